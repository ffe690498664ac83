package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/nudge/internal/config"
	"github.com/abhisek/nudge/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Ambient micro-learning in your terminal",
	Long: "nudge watches a simulated context (time of day, mood, surroundings) and queues\n" +
		"bite-sized lessons that fit it. Open one when you have a minute.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides NUDGE_DB env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (overrides NUDGE_DEBUG)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep all state in memory; nothing is persisted")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(triggerCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(ambientCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then NUDGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
