package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kanjidrill/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all kanji stat records",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadFileConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return err
		}
		db, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.ResetStats(); err != nil {
			return err
		}
		fmt.Println("Stats cleared.")
		return nil
	},
}
