package nexusweb

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/eringen/nexusweb/content"
	"github.com/eringen/nexusweb/site"
	"github.com/eringen/nexusweb/views"
)

// DefaultContactFormURL is the third-party form embedded on /contact/ when
// the native form is off.
const DefaultContactFormURL = "https://notionforms.io/forms/nexus-mutual-general-contact"

// DefaultDescription is the site description used in meta tags and feeds.
const DefaultDescription = "Covering crypto since 2019. Protect your crypto against slashing."

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string // Site name (default "Nexus Mutual")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Addr        string // Listen address (default ":3000")

	ContentDir    string        // Blog content directory (default "content/blog")
	ContentExt    string        // Recognized content extension (default ".mdx")
	StaticDir     string        // Static assets served under /public (default "public")
	DefaultAuthor string        // Author for posts without one
	PostCacheTTL  time.Duration // 0 re-reads the content directory on every request

	InquiriesEnabled bool   // Native contact form instead of the embedded one
	DatabasePath     string // SQLite path for inquiries (default "data/site.db")
	ContactFormURL   string // Embedded form URL
	AppURL           string // "Open App" target

	AdminPassword string // Empty disables the inbox
	SessionSecret string // Required when inquiries are enabled
	CookieSecure  bool   // Set true for HTTPS

	MetricsEnabled bool
	LogLevel       string
	LogPretty      bool
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Nexus Mutual"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = DefaultDescription
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.ContentExt == "" {
		c.ContentExt = ".mdx"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.DefaultAuthor == "" {
		c.DefaultAuthor = content.DefaultAuthor
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.ContactFormURL == "" {
		c.ContactFormURL = DefaultContactFormURL
	}
	if c.AppURL == "" {
		c.AppURL = site.DefaultAppURL
	}
	if c.LogLevel == "" {
		c.LogLevel = zerolog.InfoLevel.String()
	}
	if c.PostCacheTTL < 0 {
		c.PostCacheTTL = 0
	}
}

func (c SiteConfig) validate() error {
	if c.InquiriesEnabled && c.SessionSecret == "" {
		return errors.New("nexusweb: SessionSecret is required when inquiries are enabled")
	}
	if c.AdminPassword != "" && c.SessionSecret == "" {
		return errors.New("nexusweb: SessionSecret is required when AdminPassword is set")
	}
	return nil
}

func (c SiteConfig) views() views.SiteConfig {
	return views.SiteConfig{
		Name:           c.Name,
		URL:            c.URL,
		Description:    c.Description,
		AppURL:         c.AppURL,
		ContactFormURL: c.ContactFormURL,
	}
}

// EnvPrefix is prepended to every configuration key read from the environment.
const EnvPrefix = "NEXUS"

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("name", "Nexus Mutual")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", DefaultDescription)
	v.SetDefault("addr", ":3000")
	v.SetDefault("content_dir", "content/blog")
	v.SetDefault("content_ext", ".mdx")
	v.SetDefault("static_dir", "public")
	v.SetDefault("default_author", content.DefaultAuthor)
	v.SetDefault("post_cache_ttl", time.Duration(0))
	v.SetDefault("inquiries_enabled", true)
	v.SetDefault("database_path", "data/site.db")
	v.SetDefault("contact_form_url", DefaultContactFormURL)
	v.SetDefault("app_url", site.DefaultAppURL)
	v.SetDefault("admin_password", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
}

// LoadConfig reads configuration from the YAML file at path (or ./config.yaml
// when path is empty), then from NEXUS_* environment variables. A missing
// default config file is not an error.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()
	setViperDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return SiteConfig{}, fmt.Errorf("nexusweb: read config: %w", err)
		}
	}

	cfg := SiteConfig{
		Name:             v.GetString("name"),
		URL:              strings.TrimRight(v.GetString("url"), "/"),
		Description:      v.GetString("description"),
		Addr:             v.GetString("addr"),
		ContentDir:       v.GetString("content_dir"),
		ContentExt:       v.GetString("content_ext"),
		StaticDir:        v.GetString("static_dir"),
		DefaultAuthor:    v.GetString("default_author"),
		PostCacheTTL:     v.GetDuration("post_cache_ttl"),
		InquiriesEnabled: v.GetBool("inquiries_enabled"),
		DatabasePath:     v.GetString("database_path"),
		ContactFormURL:   v.GetString("contact_form_url"),
		AppURL:           v.GetString("app_url"),
		AdminPassword:    v.GetString("admin_password"),
		SessionSecret:    v.GetString("session_secret"),
		CookieSecure:     v.GetBool("cookie_secure"),
		MetricsEnabled:   v.GetBool("metrics_enabled"),
		LogLevel:         v.GetString("log_level"),
		LogPretty:        v.GetBool("log_pretty"),
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return SiteConfig{}, fmt.Errorf("nexusweb: log_level: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
// Paths without a trailing slash are redirected to the slashed form before
// routing, so register page routes with one.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger sets the application logger (default: NewLogger from config).
func WithLogger(log zerolog.Logger) Option {
	return func(a *App) {
		a.Log = log
		a.customLogger = true
	}
}

// WithViews overrides individual page renderers. Nil fields keep the
// built-in views.
func WithViews(vf ViewFuncs) Option {
	return func(a *App) {
		a.Views = vf
	}
}

// WithWatch invalidates the post cache whenever the content directory changes.
func WithWatch() Option {
	return func(a *App) {
		a.watch = true
	}
}
