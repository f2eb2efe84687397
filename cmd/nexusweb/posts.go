package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/nexusweb"
	"github.com/eringen/nexusweb/content"
)

func (c *cli) loader(w io.Writer) *content.Loader {
	return content.NewLoader(c.cfg.ContentDir,
		content.WithExtension(c.cfg.ContentExt),
		content.WithDefaultAuthor(c.cfg.DefaultAuthor),
		content.WithLogger(nexusweb.NewLogger(c.cfg.LogLevel, true, w)),
	)
}

func (c *cli) postsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List blog posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts := c.loader(cmd.ErrOrStderr()).Posts()
			out := cmd.OutOrStdout()
			if len(posts) == 0 {
				fmt.Fprintf(out, "No posts in %s\n", c.cfg.ContentDir)
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tDATE\tTITLE\tAUTHOR")
			for _, p := range posts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Slug, p.Date, p.Title, p.Author)
			}
			return tw.Flush()
		},
	}
}
