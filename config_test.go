package nexusweb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/nexusweb/site"
)

func TestSetDefaults(t *testing.T) {
	var c SiteConfig
	c.setDefaults()

	assert.Equal(t, "Nexus Mutual", c.Name)
	assert.Equal(t, "http://localhost:3000", c.URL)
	assert.Equal(t, DefaultDescription, c.Description)
	assert.Equal(t, ":3000", c.Addr)
	assert.Equal(t, "content/blog", c.ContentDir)
	assert.Equal(t, ".mdx", c.ContentExt)
	assert.Equal(t, "public", c.StaticDir)
	assert.Equal(t, "Nexus Mutual Team", c.DefaultAuthor)
	assert.Equal(t, "data/site.db", c.DatabasePath)
	assert.Equal(t, DefaultContactFormURL, c.ContactFormURL)
	assert.Equal(t, site.DefaultAppURL, c.AppURL)
	assert.Equal(t, "info", c.LogLevel)
	assert.Zero(t, c.PostCacheTTL)
}

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Nexus Staging
url: https://staging.example.com/
content_dir: posts
post_cache_ttl: 5m
inquiries_enabled: false
log_level: debug
`), 0o644))
	t.Setenv("NEXUS_ADDR", ":8080")
	t.Setenv("NEXUS_SESSION_SECRET", "from-env")
	t.Setenv("NEXUS_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Nexus Staging", cfg.Name)
	assert.Equal(t, "https://staging.example.com", cfg.URL)
	assert.Equal(t, "posts", cfg.ContentDir)
	assert.Equal(t, 5*time.Minute, cfg.PostCacheTTL)
	assert.False(t, cfg.InquiriesEnabled)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "from-env", cfg.SessionSecret)
	assert.Equal(t, "warn", cfg.LogLevel, "env overrides the file")
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, ".mdx", cfg.ContentExt)
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "Nexus Mutual", cfg.Name)
	assert.True(t, cfg.InquiriesEnabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Zero(t, cfg.PostCacheTTL)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log_level: loud\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SiteConfig
		wantErr bool
	}{
		{"static only", SiteConfig{}, false},
		{"inquiries without secret", SiteConfig{InquiriesEnabled: true}, true},
		{"inquiries with secret", SiteConfig{InquiriesEnabled: true, SessionSecret: "s"}, false},
		{"admin without secret", SiteConfig{AdminPassword: "p"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestContentSecurityPolicyFrameSource(t *testing.T) {
	assert.Contains(t, contentSecurityPolicy("https://forms.example.com/x"), "frame-src 'self' https://forms.example.com;")
	assert.Contains(t, contentSecurityPolicy(""), "frame-src 'self';")
}
