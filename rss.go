package nexusweb

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/nexusweb/content"
)

const dublinCoreNS = "http://purl.org/dc/elements/1.1/"

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	DC      string     `xml:"xmlns:dc,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Creator     string   `xml:"dc:creator,omitempty"` // <author> must be an email address
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
}

// buildRSS assembles the feed for posts, which must already be sorted
// newest first.
func buildRSS(cfg SiteConfig, posts []content.PostMetadata) rssXML {
	base := cfg.URL
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if t, ok := content.ParseDate(p.Date); ok {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := BuildURL(base, "blog", p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			Creator:     p.Author,
			Categories:  p.Tags,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	channel := rssChannel{
		Title:       cfg.Name,
		Link:        BuildURL(base),
		Description: cfg.Description,
		Language:    "en",
		Items:       items,
	}
	if len(items) > 0 {
		channel.LastBuildDate = items[0].PubDate
	}
	return rssXML{Version: "2.0", DC: dublinCoreNS, Channel: channel}
}

func (a *App) renderRSS(c echo.Context, posts []content.PostMetadata) error {
	return writeXML(c, "application/rss+xml; charset=utf-8", buildRSS(a.Config, posts))
}

func writeXML(c echo.Context, contentType string, v any) error {
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	enc := xml.NewEncoder(c.Response())
	enc.Indent("", "  ")
	return enc.Encode(v)
}
