package nexusweb

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testPassword = "hunter2-but-longer"
)

const claimsPost = `---
title: "How claims work"
date: "2022-04-30"
excerpt: "Paid fast."
featuredImage: "/images/blog/cover.png"
tags: ["claims", "cover"]
---
## How claims work

Members vote on every claim. Read the [docs](https://docs.nexusmutual.io/).
`

const olderPost = `---
title: "Welcome"
date: "2021-01-15"
---
First post.
`

// testSite lays out a content and static directory under a temp dir.
type testSite struct {
	root    string
	content string
	static  string
}

func newTestSite(t *testing.T) testSite {
	t.Helper()
	root := t.TempDir()
	s := testSite{
		root:    root,
		content: filepath.Join(root, "content"),
		static:  filepath.Join(root, "public"),
	}
	require.NoError(t, os.MkdirAll(s.content, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(s.static, "images", "blog"), 0o755))
	return s
}

func (s testSite) post(t *testing.T, slug, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(s.content, slug+".mdx"), []byte(src), 0o644))
}

func (s testSite) png(t *testing.T, rel string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	p := filepath.Join(s.static, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o644))
}

func (s testSite) config() SiteConfig {
	return SiteConfig{
		URL:            "https://example.com",
		ContentDir:     s.content,
		StaticDir:      s.static,
		DatabasePath:   filepath.Join(s.root, "data", "site.db"),
		MetricsEnabled: true,
	}
}

func newTestApp(t *testing.T, cfg SiteConfig, opts ...Option) *App {
	t.Helper()
	a := New(cfg, append([]Option{WithLogger(zerolog.Nop())}, opts...)...)
	require.NoError(t, a.Init())
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func do(a *App, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	return rec
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestPublicPages(t *testing.T) {
	s := newTestSite(t)
	s.post(t, "how-claims-work", claimsPost)
	a := newTestApp(t, s.config())

	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"<title>Nexus Mutual - The First Crypto Insurance Alternative</title>", "smart contract hacks"}},
		{"/cover-products/", []string{"<title>Cover Products | Nexus Mutual</title>", "Protocol Cover"}},
		{"/claims/", []string{"<title>Claims | Nexus Mutual</title>", "$18,249,286 in claims paid"}},
		{"/contact/", []string{"<title>Contact us | Nexus Mutual</title>", "<iframe"}},
		{"/blog/", []string{"<title>Blog | Nexus Mutual</title>", "How claims work", `href="/blog/how-claims-work/"`}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(a, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
			for _, want := range tt.want {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestTrailingSlashRedirect(t *testing.T) {
	a := newTestApp(t, newTestSite(t).config())
	rec := do(a, http.MethodGet, "/claims", nil)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/claims/", rec.Header().Get(echo.HeaderLocation))
}

func TestClaimsStoryQuery(t *testing.T) {
	a := newTestApp(t, newTestSite(t).config())

	tests := []struct {
		query string
		want  string
	}{
		{"", `data-current="0"`},
		{"?story=2", `data-current="2"`},
		{"?story=7", `data-current="2"`},
		{"?story=-1", `data-current="0"`},
		{"?story=abc", `data-current="0"`},
	}
	for _, tt := range tests {
		rec := do(a, http.MethodGet, "/claims/"+tt.query, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), tt.want, "query %q", tt.query)
	}
}

func TestBlogPostPage(t *testing.T) {
	s := newTestSite(t)
	s.post(t, "how-claims-work", claimsPost)
	a := newTestApp(t, s.config())

	rec := do(a, http.MethodGet, "/blog/how-claims-work/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>How claims work | Nexus Mutual</title>")
	assert.Contains(t, body, `<h2 id="how-claims-work"`)
	assert.Contains(t, body, `href="https://docs.nexusmutual.io/" target="_blank" rel="noopener noreferrer"`)
	assert.Contains(t, body, "APRIL 30, 2022")
	assert.Contains(t, body, "By Nexus Mutual Team")
	assert.Contains(t, body, `<link rel="canonical" href="https://example.com/blog/how-claims-work/">`)
	assert.Contains(t, body, `"@type":"BlogPosting"`)
}

func TestBlogPostUnknownSlug(t *testing.T) {
	a := newTestApp(t, newTestSite(t).config())
	for _, p := range []string{"/blog/missing/", "/blog/..%2Fsecret/", "/no-such-page/"} {
		rec := do(a, http.MethodGet, p, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, p)
		assert.Contains(t, rec.Body.String(), "Page not found", p)
	}
}

func TestBlogIndexEmptyState(t *testing.T) {
	a := newTestApp(t, newTestSite(t).config())
	rec := do(a, http.MethodGet, "/blog/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No blog posts yet")
}

func TestBlogIndexNewestFirst(t *testing.T) {
	s := newTestSite(t)
	s.post(t, "welcome", olderPost)
	s.post(t, "how-claims-work", claimsPost)
	a := newTestApp(t, s.config())

	body := do(a, http.MethodGet, "/blog/", nil).Body.String()
	newer := strings.Index(body, "/blog/how-claims-work/")
	older := strings.Index(body, "/blog/welcome/")
	require.NotEqual(t, -1, newer)
	require.NotEqual(t, -1, older)
	assert.Less(t, newer, older)
	assert.Contains(t, body, `src="/thumbs/images/blog/cover.png?w=600"`)
}

func TestMissingContentDirectory(t *testing.T) {
	cfg := newTestSite(t).config()
	cfg.ContentDir = filepath.Join(cfg.ContentDir, "nope")
	a := newTestApp(t, cfg)

	rec := do(a, http.MethodGet, "/blog/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No blog posts yet")

	metrics := do(a, http.MethodGet, "/metrics", nil).Body.String()
	assert.Contains(t, metrics, `nexusweb_content_load_failures_total{kind="dir_unreadable"}`)
}

func TestFeedsAndRobots(t *testing.T) {
	s := newTestSite(t)
	s.post(t, "how-claims-work", claimsPost)
	a := newTestApp(t, s.config())

	feed := do(a, http.MethodGet, "/feed.xml", nil)
	require.Equal(t, http.StatusOK, feed.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", feed.Header().Get(echo.HeaderContentType))
	assert.Contains(t, feed.Body.String(), "<link>https://example.com/blog/how-claims-work/</link>")
	assert.Contains(t, feed.Body.String(), "<pubDate>Sat, 30 Apr 2022 00:00:00 +0000</pubDate>")

	sitemap := do(a, http.MethodGet, "/sitemap.xml", nil)
	require.Equal(t, http.StatusOK, sitemap.Code)
	assert.Contains(t, sitemap.Body.String(), "<loc>https://example.com/cover-products/</loc>")
	assert.Contains(t, sitemap.Body.String(), "<lastmod>2022-04-30</lastmod>")
	assert.Equal(t, "public, max-age=86400", sitemap.Header().Get("Cache-Control"))

	robots := do(a, http.MethodGet, "/robots.txt", nil)
	require.Equal(t, http.StatusOK, robots.Code)
	assert.Contains(t, robots.Body.String(), "Sitemap: https://example.com/sitemap.xml")
}

func TestRobotsFromStaticDir(t *testing.T) {
	s := newTestSite(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.static, "robots.txt"), []byte("User-agent: *\nDisallow: /\n"), 0o644))
	a := newTestApp(t, s.config())
	assert.Equal(t, "User-agent: *\nDisallow: /\n", do(a, http.MethodGet, "/robots.txt", nil).Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	a := newTestApp(t, newTestSite(t).config())

	rec := do(a, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	do(a, http.MethodGet, "/", nil)
	metrics := do(a, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), `nexusweb_http_requests_total{method="GET",route="/",status="200"} 1`)
	assert.NotContains(t, metrics.Body.String(), `route="/metrics"`)
}

func TestMetricsDisabled(t *testing.T) {
	cfg := newTestSite(t).config()
	cfg.MetricsEnabled = false
	a := newTestApp(t, cfg)
	assert.Nil(t, a.Metrics)
	assert.Equal(t, http.StatusNotFound, do(a, http.MethodGet, "/metrics", nil).Code)
}

func TestEmbeddedScript(t *testing.T) {
	a := newTestApp(t, newTestSite(t).config())
	rec := do(a, http.MethodGet, "/public/site.js", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data-typewriter")
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))
}

func TestSecurityHeaders(t *testing.T) {
	a := newTestApp(t, newTestSite(t).config())
	rec := do(a, http.MethodGet, "/contact/", nil)
	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "frame-src 'self' https://notionforms.io")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestCustomViewsAndRoutes(t *testing.T) {
	a := newTestApp(t, newTestSite(t).config(),
		WithViews(ViewFuncs{NotFound: func() templ.Component { return templ.Raw("custom missing") }}),
		WithCustomRoutes(func(a *App) {
			a.Echo.GET("/ping/", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
		}),
	)
	assert.Equal(t, "pong", do(a, http.MethodGet, "/ping/", nil).Body.String())

	redirect := do(a, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusMovedPermanently, redirect.Code)
	assert.Equal(t, "/ping/", redirect.Header().Get(echo.HeaderLocation))

	rec := do(a, http.MethodGet, "/blog/missing/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "custom missing", rec.Body.String())
	assert.Contains(t, do(a, http.MethodGet, "/", nil).Body.String(), "smart contract hacks")
}

func TestInitRequiresSessionSecretForInquiries(t *testing.T) {
	cfg := newTestSite(t).config()
	cfg.InquiriesEnabled = true
	a := New(cfg, WithLogger(zerolog.Nop()))
	assert.Error(t, a.Init())
	assert.Error(t, a.Init(), "Init result is sticky")
}

func TestThumbnails(t *testing.T) {
	s := newTestSite(t)
	s.png(t, "images/blog/cover.png", 100, 50)
	require.NoError(t, os.WriteFile(filepath.Join(s.static, "images", "notes.txt"), []byte("x"), 0o644))
	a := newTestApp(t, s.config())

	decode := func(t *testing.T, rec *httptest.ResponseRecorder) image.Image {
		t.Helper()
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/jpeg", rec.Header().Get(echo.HeaderContentType))
		img, err := jpeg.Decode(rec.Body)
		require.NoError(t, err)
		return img
	}

	small := decode(t, do(a, http.MethodGet, "/thumbs/images/blog/cover.png?w=40", nil))
	assert.Equal(t, 40, small.Bounds().Dx())
	assert.Equal(t, 20, small.Bounds().Dy())

	// never upscaled
	full := decode(t, do(a, http.MethodGet, "/thumbs/images/blog/cover.png?w=600", nil))
	assert.Equal(t, 100, full.Bounds().Dx())

	clamped := decode(t, do(a, http.MethodGet, "/thumbs/images/blog/cover.png?w=1", nil))
	assert.Equal(t, thumbMinWidth, clamped.Bounds().Dx())

	for _, p := range []string{
		"/thumbs/images/blog/missing.png",
		"/thumbs/images/notes.txt",
		"/thumbs/../app_test.go",
		"/thumbs/images/../../secret.png",
	} {
		assert.Equal(t, http.StatusNotFound, do(a, http.MethodGet, p, nil).Code, p)
	}
}

func TestClampWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", thumbDefaultWidth},
		{"abc", thumbDefaultWidth},
		{"600", 600},
		{"0", thumbMinWidth},
		{"-5", thumbMinWidth},
		{"99999", thumbMaxWidth},
	}
	for _, tt := range tests {
		if got := clampWidth(tt.in); got != tt.want {
			t.Errorf("clampWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", nil, "https://example.com/"},
		{"https://example.com/", []string{"blog", "a-post"}, "https://example.com/blog/a-post/"},
		{"https://example.com/site", []string{"claims"}, "https://example.com/site/claims/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"claims", "cover"}, SplitTags(" claims, ,cover ,"))
	assert.Equal(t, []string{}, SplitTags(""))
}
