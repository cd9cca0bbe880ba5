package cmd

import (
	"github.com/abhisek/clozeit/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clozeit",
	Short: "Cloze and C-test reading practice",
	Long:  "clozeit is a terminal app for reading-comprehension gap exercises (C-tests and cloze tests) over AI-generated or your own passages.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CLOZEIT_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./clozeit.* or $XDG_CONFIG_HOME/clozeit/clozeit.*)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CLOZEIT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
