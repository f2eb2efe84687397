package nexusweb

import (
	"encoding/xml"

	"github.com/labstack/echo/v4"

	"github.com/eringen/nexusweb/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// staticPages lists the fixed routes, as path segments, with their priority.
var staticPages = []struct {
	segments []string
	priority string
}{
	{nil, "1.0"},
	{[]string{"cover-products"}, "0.8"},
	{[]string{"claims"}, "0.8"},
	{[]string{"contact"}, "0.5"},
	{[]string{"blog"}, "0.7"},
}

func buildSitemap(base string, posts []content.PostMetadata) sitemapURLSet {
	urls := make([]sitemapURL, 0, len(staticPages)+len(posts))
	for _, p := range staticPages {
		urls = append(urls, sitemapURL{
			Loc:        BuildURL(base, p.segments...),
			ChangeFreq: "weekly",
			Priority:   p.priority,
		})
	}
	for _, p := range posts {
		u := sitemapURL{
			Loc:        BuildURL(base, "blog", p.Slug),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		}
		if t, ok := content.ParseDate(p.Date); ok {
			u.LastMod = t.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func (a *App) renderSitemap(c echo.Context, posts []content.PostMetadata) error {
	return writeXML(c, "application/xml; charset=utf-8", buildSitemap(a.Config.URL, posts))
}
