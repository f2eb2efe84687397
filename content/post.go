// Package content loads blog posts from Markdown/MDX files with front matter.
//
// Posts are rebuilt from disk on every call. Content is authored out-of-band
// as files and is read-only from the application's point of view.
package content

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultAuthor is used when a post's front matter has no author.
const DefaultAuthor = "Nexus Mutual Team"

// Post is a single blog post resolved from a content file.
type Post struct {
	Slug          string
	Title         string
	Date          string
	FeaturedImage string
	Excerpt       string
	Author        string
	Tags          []string
	Content       string
}

// PostMetadata is a Post without its body, used by listing views.
type PostMetadata struct {
	Slug          string
	Title         string
	Date          string
	FeaturedImage string
	Excerpt       string
	Author        string
	Tags          []string
}

// Link returns the site-relative URL of the post.
func (p Post) Link() string {
	return "/blog/" + p.Slug + "/"
}

// Metadata drops the body.
func (p Post) Metadata() PostMetadata {
	return PostMetadata{
		Slug:          p.Slug,
		Title:         p.Title,
		Date:          p.Date,
		FeaturedImage: p.FeaturedImage,
		Excerpt:       p.Excerpt,
		Author:        p.Author,
		Tags:          p.Tags,
	}
}

// Link returns the site-relative URL of the post.
func (m PostMetadata) Link() string {
	return "/blog/" + m.Slug + "/"
}

// Project strips the body from every post, preserving order.
func Project(posts []Post) []PostMetadata {
	out := make([]PostMetadata, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Metadata())
	}
	return out
}

// frontMatter mirrors the keys accepted at the top of a content file.
type frontMatter struct {
	Title         string   `yaml:"title" json:"title" toml:"title"`
	Date          string   `yaml:"date" json:"date" toml:"date"`
	FeaturedImage string   `yaml:"featuredImage" json:"featuredImage" toml:"featuredImage"`
	Excerpt       string   `yaml:"excerpt" json:"excerpt" toml:"excerpt"`
	Author        string   `yaml:"author" json:"author" toml:"author"`
	Tags          tagList  `yaml:"tags" json:"tags" toml:"tags"`
}

// tagList accepts either a list of tags or a single scalar tag.
type tagList []string

func singleTag(s string) tagList {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return tagList{s}
}

func (t *tagList) UnmarshalYAML(unmarshal func(any) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*t = list
		return nil
	}
	var one string
	if err := unmarshal(&one); err != nil {
		return err
	}
	*t = singleTag(one)
	return nil
}

func (t *tagList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = list
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*t = singleTag(one)
	return nil
}

func (t *tagList) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*t = singleTag(v)
	case []any:
		list := make(tagList, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("content: tag %v is not a string", e)
			}
			list = append(list, s)
		}
		*t = list
	default:
		return fmt.Errorf("content: unsupported tags value %T", v)
	}
	return nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate parses the loosely formatted date strings found in front matter.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InvalidDate is what FormatDate returns for input it cannot parse.
const InvalidDate = "Invalid Date"

// FormatDate renders a date as "Month D, YYYY", e.g. "April 30, 2022".
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return InvalidDate
	}
	return t.Format("January 2, 2006")
}
