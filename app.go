// Package nexusweb serves the Nexus Mutual marketing site: the landing,
// products, claims and contact pages plus a blog read from a directory of
// Markdown/MDX files. It is built on Echo and html/template views exposed as
// templ components, and it can also render itself to a static directory.
package nexusweb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/nexusweb/content"
	"github.com/eringen/nexusweb/inquiries"
	"github.com/eringen/nexusweb/markdown"
	"github.com/eringen/nexusweb/views"
)

// App is the central application. It wires together the content loader,
// cache, inquiry store, handlers, middleware and views.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Loader    *content.Loader
	Cache     *PostCache
	Views     ViewFuncs
	Inquiries *inquiries.Store
	Metrics   *Metrics
	Log       zerolog.Logger

	markdown       *markdown.Renderer
	thumbs         *thumbCache
	loginLimiter   *Limiter
	contactLimiter *Limiter
	watcher        *Watcher
	customRoutes   []func(*App)
	customLogger   bool
	watch          bool
	building       atomic.Bool

	initOnce sync.Once
	initErr  error
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	if !a.customLogger {
		a.Log = NewLogger(a.Config.LogLevel, a.Config.LogPretty, nil)
	}
	return a
}

// Init prepares the content loader, cache, stores, middleware and routes.
// It runs once; later calls return the first result. Start and Build call it.
func (a *App) Init() error {
	a.initOnce.Do(func() {
		a.initErr = a.init()
	})
	return a.initErr
}

func (a *App) init() error {
	if !a.building.Load() {
		if err := a.Config.validate(); err != nil {
			return err
		}
	}

	if a.Config.MetricsEnabled {
		a.Metrics = NewMetrics()
	}

	loaderOpts := []content.Option{
		content.WithExtension(a.Config.ContentExt),
		content.WithDefaultAuthor(a.Config.DefaultAuthor),
		content.WithLogger(a.Log.With().Str("component", "content").Logger()),
	}
	if a.Metrics != nil {
		loaderOpts = append(loaderOpts, content.WithFailureHook(a.Metrics.ContentFailure))
	}
	a.Loader = content.NewLoader(a.Config.ContentDir, loaderOpts...)
	a.Cache = NewPostCache(a.Loader, a.Config.PostCacheTTL)
	a.markdown = markdown.New()
	a.thumbs = newThumbCache(a.Config.StaticDir)

	v := views.New(a.Config.views())
	a.Views.fill(DefaultViews(v))

	if a.Config.InquiriesEnabled && !a.building.Load() {
		store, err := inquiries.NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("nexusweb: init inquiries: %w", err)
		}
		a.Inquiries = store
		a.contactLimiter = NewLimiter(5, 10*time.Minute)
	}
	if a.adminEnabled() {
		a.loginLimiter = NewLimiter(5, time.Minute)
	}

	if a.watch && a.Config.PostCacheTTL > 0 {
		w, err := NewWatcher(a.Config.ContentDir, a.Cache.Invalidate, a.Log)
		if err != nil {
			a.Log.Warn().Err(err).Str("dir", a.Config.ContentDir).Msg("content watcher disabled")
		} else {
			a.watcher = w
		}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) adminEnabled() bool {
	return a.Config.AdminPassword != "" && a.Config.SessionSecret != ""
}

func (a *App) inquiriesEnabled() bool {
	return a.Inquiries != nil && !a.building.Load()
}

// Start initializes the app and serves HTTP until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Log.Info().Str("addr", a.Config.Addr).Str("content_dir", a.Config.ContentDir).Msg("server starting")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// ServeHTTP lets the app be used as an http.Handler once initialized.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Echo.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	e := a.Echo

	embedded, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.StripPrefix(StaticPrefix+"/", http.FileServer(http.FS(embedded)))
	for _, name := range embeddedFiles() {
		e.GET(StaticPrefix+"/"+name, echo.WrapHandler(embeddedHandler))
	}

	e.Static(StaticPrefix, a.Config.StaticDir)
	e.GET("/thumbs/*", a.handleThumb)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", handleHealth)
	if a.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(a.Metrics.Handler()))
	}

	e.GET("/", a.handleHome)
	e.GET("/cover-products/", a.handleProducts)
	e.GET("/claims/", a.handleClaims)
	e.GET("/contact/", a.handleContact)
	e.POST("/contact/", a.handleContactSubmit)
	e.GET("/blog/", a.handleBlogIndex)
	e.GET("/blog/:slug/", a.handleBlogPost)

	if a.adminEnabled() {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.DELETE("/admin/inquiries/:id/", a.handleAdminDelete)
		e.POST("/admin/inquiries/:id/delete/", a.handleAdminDelete)
	}
}

// Close releases the store, limiters and watcher.
func (a *App) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.contactLimiter != nil {
		a.contactLimiter.Stop()
	}
	if a.Inquiries != nil {
		errs = append(errs, a.Inquiries.Close())
	}
	return errors.Join(errs...)
}
