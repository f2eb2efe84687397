package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/nexusweb/inquiries"
)

const messagePreview = 60

func (c *cli) inquiriesCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "inquiries",
		Short: "List stored contact inquiries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if _, err := os.Stat(c.cfg.DatabasePath); errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintln(out, "No inquiries.")
				return nil
			}
			store, err := inquiries.NewStore(c.cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			list, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "No inquiries.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RECEIVED\tID\tNAME\tEMAIL\tCOMPANY\tMESSAGE")
			for _, inq := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					inq.CreatedAt.Format("2006-01-02 15:04"), inq.ID, inq.Name, inq.Email,
					inq.Company, preview(inq.Message))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum number of inquiries to show")
	return cmd
}

// preview flattens msg onto one line and truncates it.
func preview(msg string) string {
	msg = strings.Join(strings.Fields(msg), " ")
	r := []rune(msg)
	if len(r) <= messagePreview {
		return msg
	}
	return string(r[:messagePreview-1]) + "…"
}
