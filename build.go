package nexusweb

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/eringen/nexusweb/views"
)

// BuildResult summarises a static build.
type BuildResult struct {
	Pages   int // files rendered from routes
	Posts   int // blog post pages among Pages
	Assets  int // static, embedded and thumbnail files written
	Skipped int // content files that did not resolve to a post
}

// buildRoute maps a request path onto the file it is written to.
type buildRoute struct {
	path string
	file string
	want int
}

func staticRoutes() []buildRoute {
	return []buildRoute{
		{"/", "index.html", http.StatusOK},
		{"/cover-products/", "cover-products/index.html", http.StatusOK},
		{"/claims/", "claims/index.html", http.StatusOK},
		{"/contact/", "contact/index.html", http.StatusOK},
		{"/blog/", "blog/index.html", http.StatusOK},
		{"/sitemap.xml", "sitemap.xml", http.StatusOK},
		{"/feed.xml", "feed.xml", http.StatusOK},
		{"/robots.txt", "robots.txt", http.StatusOK},
		{"/404/", "404.html", http.StatusNotFound},
	}
}

// Build renders every page through the app's own router and writes the
// result under outDir. Blog pages come from the content slugs; a file that
// does not resolve is logged and left out, as it is when serving. The contact
// page uses the embedded third-party form. Build must run on an App that has
// not been initialized for serving.
func (a *App) Build(ctx context.Context, outDir string) (BuildResult, error) {
	a.building.Store(true)
	if err := a.Init(); err != nil {
		return BuildResult{}, err
	}

	var res BuildResult
	routes := staticRoutes()
	for _, slug := range a.Loader.Slugs() {
		if _, err := a.Cache.GetPost(slug); err != nil {
			a.Log.Warn().Str("slug", slug).Msg("post skipped")
			res.Skipped++
			continue
		}
		routes = append(routes, buildRoute{
			path: "/blog/" + slug + "/",
			file: path.Join("blog", slug, "index.html"),
			want: http.StatusOK,
		})
		res.Posts++
	}

	for _, r := range routes {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		body, err := a.fetch(ctx, r.path, r.want)
		if err != nil {
			return res, err
		}
		if err := writeFile(filepath.Join(outDir, filepath.FromSlash(r.file)), body); err != nil {
			return res, err
		}
		res.Pages++
	}

	n, err := copyDir(a.Config.StaticDir, filepath.Join(outDir, "public"))
	if err != nil {
		return res, err
	}
	res.Assets += n

	for _, name := range embeddedFiles() {
		data, err := fs.ReadFile(EmbeddedAssets, "embedded/"+name)
		if err != nil {
			return res, fmt.Errorf("nexusweb: build: read %s: %w", name, err)
		}
		if err := writeFile(filepath.Join(outDir, "public", name), data); err != nil {
			return res, err
		}
		res.Assets++
	}

	n, err = a.buildThumbs(outDir)
	if err != nil {
		return res, err
	}
	res.Assets += n

	a.Log.Info().
		Str("out", outDir).
		Int("pages", res.Pages).
		Int("posts", res.Posts).
		Int("assets", res.Assets).
		Int("skipped", res.Skipped).
		Msg("build complete")
	return res, nil
}

// fetch renders one route in-process and checks its status.
func (a *App) fetch(ctx context.Context, p string, want int) ([]byte, error) {
	req := httptest.NewRequest(http.MethodGet, p, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != want {
		return nil, fmt.Errorf("nexusweb: build: GET %s: status %d, want %d", p, rec.Code, want)
	}
	return rec.Body.Bytes(), nil
}

// buildThumbs writes the listing-card thumbnails at the path the blog index
// links to, without the width query, so a static host can serve them.
func (a *App) buildThumbs(outDir string) (int, error) {
	seen := make(map[string]bool)
	n := 0
	for _, p := range a.Cache.ListMetadata() {
		u := views.Thumb(p.FeaturedImage, views.CardThumbWidth)
		if u == "" || !strings.HasPrefix(u, "/thumbs/") {
			continue
		}
		rel, _, _ := strings.Cut(u, "?")
		if seen[rel] {
			continue
		}
		seen[rel] = true
		data, err := a.thumbs.get(strings.TrimPrefix(rel, "/thumbs/"), views.CardThumbWidth)
		if err != nil {
			a.Log.Warn().Err(err).Str("image", p.FeaturedImage).Str("slug", p.Slug).Msg("thumbnail skipped")
			continue
		}
		if err := writeFile(filepath.Join(outDir, filepath.FromSlash(strings.TrimPrefix(rel, "/"))), data); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func writeFile(file string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("nexusweb: build: %w", err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("nexusweb: build: %w", err)
	}
	return nil
}

// copyDir copies the regular files under src into dst. A missing src copies
// nothing.
func copyDir(src, dst string) (int, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return 0, nil
	}
	n := 0
	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(p, target); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, fmt.Errorf("nexusweb: build: copy static: %w", err)
	}
	return n, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
