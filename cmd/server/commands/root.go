package commands

import (
	"fmt"
	"os"

	"github.com/blogfolio/internal/config"
	"github.com/spf13/cobra"
)

var cfg config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "blogfolio",
	Short: "Blogfolio - a small server-rendered blog",
	Long: `Blogfolio serves a blog where visitors read posts, registered readers
comment, and the admin account writes, edits and deletes posts.

Running without a subcommand starts the web server.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if databaseURL != "" {
			cfg.DatabaseURL = databaseURL
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

var databaseURL string

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db", "", "Database URL, overrides DATABASE_URL")
}
