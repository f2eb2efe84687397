package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/nexusweb"
)

const shutdownTimeout = 10 * time.Second

func (c *cli) serveCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `serve runs the site on the configured address until interrupted.
With --watch and a non-zero post_cache_ttl, edits under the content
directory invalidate the post cache immediately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []nexusweb.Option
			if watch {
				opts = append(opts, nexusweb.WithWatch())
			}
			app := nexusweb.New(c.cfg, opts...)
			defer app.Close()

			if watch && c.cfg.PostCacheTTL <= 0 {
				app.Log.Warn().Msg("--watch has no effect while post_cache_ttl is 0")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- app.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			app.Log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return app.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "invalidate the post cache when content files change")
	return cmd
}
