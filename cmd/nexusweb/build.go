package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/nexusweb"
)

func (c *cli) buildCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the site to static files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := nexusweb.New(c.cfg)
			defer app.Close()

			res, err := app.Build(cmd.Context(), out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages (%d posts) and %d assets into %s\n",
				res.Pages, res.Posts, res.Assets, out)
			if res.Skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d unreadable content files\n", res.Skipped)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dist", "output directory")
	return cmd
}
