package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/eringen/nexusweb"
	"github.com/eringen/nexusweb/content"
	"github.com/eringen/nexusweb/scaffold"
)

func (c *cli) newCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create new content",
	}
	cmd.AddCommand(c.newPostCmd())
	return cmd
}

func (c *cli) newPostCmd() *cobra.Command {
	var (
		date    string
		author  string
		tags    string
		excerpt string
	)
	cmd := &cobra.Command{
		Use:   "post <title>",
		Short: "Write a new blog post skeleton",
		Example: `  nexusweb new post "How claims work" --tags claims,cover
  nexusweb new post "Q3 update" --date 2024-10-01 --author "Ada"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			s := slug.Make(title)
			if s == "" {
				return fmt.Errorf("cannot derive a slug from %q", title)
			}

			if date == "" {
				date = c.now().Format("2006-01-02")
			} else if _, ok := content.ParseDate(date); !ok {
				return fmt.Errorf("unrecognised date %q", date)
			}
			if author == "" {
				author = c.cfg.DefaultAuthor
			}

			path := filepath.Join(c.cfg.ContentDir, s+c.cfg.ContentExt)
			if err := writeNewPost(path, scaffold.Post{
				Title:   title,
				Date:    date,
				Author:  author,
				Excerpt: excerpt,
				Tags:    nexusweb.SplitTags(tags),
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "publication date (default today)")
	cmd.Flags().StringVar(&author, "author", "", "author (default from config)")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&excerpt, "excerpt", "", "short summary for listings")
	return cmd
}

// writeNewPost creates path exclusively and renders p into it.
func writeNewPost(path string, p scaffold.Post) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create content dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s already exists", path)
	}
	if err != nil {
		return err
	}
	if err := scaffold.WritePost(f, p); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
