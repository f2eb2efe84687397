// Package scaffold renders skeleton files for new content.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"strconv"
	"text/template"
)

// Templates contains the scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Post holds the front matter of a new post.
type Post struct {
	Title         string
	Date          string
	Author        string
	Excerpt       string
	FeaturedImage string
	Tags          []string
}

var funcs = template.FuncMap{
	// Double-quoted YAML scalars accept the same escapes as Go strings.
	"quote": strconv.Quote,
}

var postTmpl = template.Must(
	template.New("post.mdx.tmpl").Funcs(funcs).ParseFS(Templates, "templates/post.mdx.tmpl"),
)

// WritePost renders the post skeleton to w.
func WritePost(w io.Writer, p Post) error {
	if p.Title == "" {
		return fmt.Errorf("scaffold: post title is required")
	}
	if err := postTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("scaffold: render post: %w", err)
	}
	return nil
}
