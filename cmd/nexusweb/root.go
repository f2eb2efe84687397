package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eringen/nexusweb"
)

// cli carries state shared by the subcommands.
type cli struct {
	cfgFile string
	envFile string
	cfg     nexusweb.SiteConfig
	now     func() time.Time
}

func newRootCmd() *cobra.Command {
	return (&cli{envFile: ".env", now: time.Now}).rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nexusweb",
		Short: "Nexus Mutual marketing site",
		Long: `nexusweb serves the Nexus Mutual marketing site and blog, renders it to
static files, and manages blog posts and contact inquiries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", c.envFile, "dotenv file loaded when present")

	root.AddCommand(
		c.serveCmd(),
		c.buildCmd(),
		c.postsCmd(),
		c.newCmd(),
		c.inquiriesCmd(),
		versionCmd(),
	)
	return root
}

func (c *cli) loadConfig() error {
	if err := loadDotEnv(c.envFile); err != nil {
		return err
	}
	cfg, err := nexusweb.LoadConfig(c.cfgFile)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// loadDotEnv loads path into the environment if it exists. Variables that
// are already set win.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nexusweb version",
		Args:  cobra.NoArgs,
		// No config needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nexusweb %s\n", version)
		},
	}
}
