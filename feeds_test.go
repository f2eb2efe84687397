package nexusweb

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/nexusweb/content"
)

var feedPosts = []content.PostMetadata{
	{Slug: "newest", Title: "Newest", Date: "2023-06-01", Excerpt: "Latest news.", Author: "Nexus Mutual Team", Tags: []string{"news"}},
	{Slug: "undated", Title: "Undated", Date: "someday", Author: "Ada"},
}

func TestBuildRSS(t *testing.T) {
	cfg := SiteConfig{Name: "Nexus Mutual", URL: "https://example.com", Description: "Cover."}
	feed := buildRSS(cfg, feedPosts)

	assert.Equal(t, "2.0", feed.Version)
	assert.Equal(t, "https://example.com/", feed.Channel.Link)
	assert.Equal(t, "Cover.", feed.Channel.Description)
	require.Len(t, feed.Channel.Items, 2)

	first := feed.Channel.Items[0]
	assert.Equal(t, "https://example.com/blog/newest/", first.Link)
	assert.Equal(t, first.Link, first.GUID)
	assert.Equal(t, "Thu, 01 Jun 2023 00:00:00 +0000", first.PubDate)
	assert.Equal(t, "Latest news.", first.Description)
	assert.Equal(t, []string{"news"}, first.Categories)
	assert.Equal(t, first.PubDate, feed.Channel.LastBuildDate)

	assert.Empty(t, feed.Channel.Items[1].PubDate, "unparsable dates are omitted")
	assert.Equal(t, "Ada", feed.Channel.Items[1].Creator)
}

func TestRSSAuthorIsDublinCoreCreator(t *testing.T) {
	out, err := xml.MarshalIndent(buildRSS(SiteConfig{Name: "x", URL: "https://example.com"}, feedPosts), "", "  ")
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, `xmlns:dc="http://purl.org/dc/elements/1.1/"`)
	assert.Contains(t, s, "<dc:creator>Nexus Mutual Team</dc:creator>")
	assert.Contains(t, s, "<dc:creator>Ada</dc:creator>")
	assert.NotContains(t, s, "<author>")
}

func TestBuildRSSEmpty(t *testing.T) {
	feed := buildRSS(SiteConfig{Name: "x", URL: "https://example.com"}, nil)
	assert.Empty(t, feed.Channel.Items)
	assert.Empty(t, feed.Channel.LastBuildDate)
}

func TestBuildSitemap(t *testing.T) {
	sm := buildSitemap("https://example.com", feedPosts)
	require.Len(t, sm.URLs, len(staticPages)+2)

	var locs []string
	for _, u := range sm.URLs {
		locs = append(locs, u.Loc)
	}
	assert.Equal(t, []string{
		"https://example.com/",
		"https://example.com/cover-products/",
		"https://example.com/claims/",
		"https://example.com/contact/",
		"https://example.com/blog/",
		"https://example.com/blog/newest/",
		"https://example.com/blog/undated/",
	}, locs)
	assert.Equal(t, "2023-06-01", sm.URLs[5].LastMod)
	assert.Empty(t, sm.URLs[6].LastMod)
}

func TestRobotsTxt(t *testing.T) {
	got := robotsTxt("https://example.com/")
	assert.True(t, strings.HasPrefix(got, "User-agent: *\n"))
	assert.Contains(t, got, "Disallow: /admin/\n")
	assert.Contains(t, got, "Sitemap: https://example.com/sitemap.xml\n")
}
