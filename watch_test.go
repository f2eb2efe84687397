package nexusweb

import (
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := NewWatcher(dir, func() { calls.Add(1) }, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "post.mdx"), []byte{byte('a' + i)}, 0o644))
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(2 * watchDebounce)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"), func() {}, zerolog.Nop())
	assert.Error(t, err)
}

func TestWatchInvalidatesPostCache(t *testing.T) {
	s := newTestSite(t)
	s.post(t, "welcome", olderPost)
	cfg := s.config()
	cfg.PostCacheTTL = time.Hour
	a := newTestApp(t, cfg, WithWatch())
	require.NotNil(t, a.watcher)

	assert.Equal(t, http.StatusNotFound, do(a, http.MethodGet, "/blog/how-claims-work/", nil).Code)
	s.post(t, "how-claims-work", claimsPost)

	assert.Eventually(t, func() bool {
		return do(a, http.MethodGet, "/blog/how-claims-work/", nil).Code == http.StatusOK
	}, 3*time.Second, 50*time.Millisecond)
}

func TestWatchNeedsCacheTTL(t *testing.T) {
	a := newTestApp(t, newTestSite(t).config(), WithWatch())
	assert.Nil(t, a.watcher, "nothing to invalidate without a cache")
}
