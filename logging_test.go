package nexusweb

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("warn", false, &buf)

	log.Info().Msg("dropped")
	log.Warn().Str("dir", "content/blog").Msg("content directory unreadable")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "content/blog", entry["dir"])
	assert.Equal(t, "content directory unreadable", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewLoggerPrettyAndFallbackLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("nonsense", true, &buf)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())

	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, strings.HasPrefix(buf.String(), "{"), "console output is not JSON")
}
