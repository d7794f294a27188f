package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/kanjidrill/internal/config"
	"github.com/abhisek/kanjidrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "kanjidrill",
	Short: "Adaptive kanji drill trainer",
	Long:  "Kanjidrill — terminal kanji trainer that tracks per-mode mastery and schedules drills toward your weakest characters.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KANJIDRILL_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file")

	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadFileConfig reads the TOML config from --config or the default path.
func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then KANJIDRILL_DB env var / the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.FileConfig) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	if cfg.Data.DB != nil && *cfg.Data.DB != "" {
		return *cfg.Data.DB, nil
	}
	return store.DefaultDBPath()
}
