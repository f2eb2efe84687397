package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/nexusweb/content"
	"github.com/eringen/nexusweb/site"
)

// StaticPrefix is the URL prefix the static directory is served under.
const StaticPrefix = "/public"

// CardThumbWidth is the thumbnail width used by blog listing cards.
const CardThumbWidth = 600

var funcs = template.FuncMap{
	"asset":      asset,
	"thumb":      Thumb,
	"cardThumb":  func(src string) string { return Thumb(src, CardThumbWidth) },
	"formatDate": content.FormatDate,
	"upper":      upper,
	"inc":        func(i int) int { return i + 1 },
	"buttonClass": func(variant, size string) string {
		return site.ButtonClass(variant, size, false)
	},
	"field":       newField,
	"isoTime":     func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"displayTime": func(t time.Time) string { return t.UTC().Format("Jan 2, 2006 15:04 MST") },
}

// upper builds a fresh Caser per call; Casers are not safe for concurrent use.
func upper(s string) string {
	return cases.Upper(language.English).String(s)
}

// formField is a single labelled input of the contact form.
type formField struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Error    string
	Required bool
}

func newField(name, label, typ, value, errMsg string, required bool) formField {
	return formField{Name: name, Label: label, Type: typ, Value: value, Error: errMsg, Required: required}
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "//")
}

// asset maps a site-relative image path such as "/images/x.png" onto the
// static prefix. Remote URLs and already-prefixed paths pass through.
func asset(src string) string {
	if src == "" || isRemote(src) || strings.HasPrefix(src, StaticPrefix+"/") {
		return src
	}
	return StaticPrefix + "/" + strings.TrimPrefix(src, "/")
}

// Thumb returns the URL of a resized copy of src at width w. Remote images
// are returned unchanged.
func Thumb(src string, w int) string {
	if src == "" || isRemote(src) {
		return src
	}
	p := strings.TrimPrefix(src, StaticPrefix)
	p = "/thumbs/" + strings.TrimPrefix(p, "/")
	return p + "?w=" + strconv.Itoa(w)
}

// absolute resolves a site-relative path against base.
func absolute(base, p string) string {
	if isRemote(p) {
		return p
	}
	u, err := url.Parse(base)
	if err != nil {
		return p
	}
	u.Path = path.Join(u.Path, p)
	return u.String()
}

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// WebsiteJSONLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJSONLD(cfg SiteConfig) template.JS {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	return marshalJSONLD(data)
}

// BlogPostingJSONLD produces a Schema.org BlogPosting block for a post.
func BlogPostingJSONLD(cfg SiteConfig, post content.Post) template.JS {
	postURL := buildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    post.Title,
		"description": post.Excerpt,
		"url":         postURL,
		"author": map[string]string{
			"@type": "Person",
			"name":  post.Author,
		},
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if t, ok := content.ParseDate(post.Date); ok {
		data["datePublished"] = t.Format("2006-01-02")
	}
	if post.FeaturedImage != "" {
		data["image"] = absolute(cfg.URL, asset(post.FeaturedImage))
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	return marshalJSONLD(data)
}

func marshalJSONLD(data map[string]interface{}) template.JS {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}
