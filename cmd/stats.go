package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kanjidrill/internal/catalog"
	"github.com/abhisek/kanjidrill/internal/config"
	"github.com/abhisek/kanjidrill/internal/report"
	"github.com/abhisek/kanjidrill/internal/stats"
	"github.com/abhisek/kanjidrill/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mastery statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("kanji", "", "Path to the kanji dataset")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}

	kanjiPath := config.DefaultKanjiPath()
	if cfg.Data.Kanji != nil && *cfg.Data.Kanji != "" {
		kanjiPath = *cfg.Data.Kanji
	}
	if p, _ := cmd.Flags().GetString("kanji"); p != "" {
		kanjiPath = p
	}

	cat, err := catalog.Load(kanjiPath)
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

	st := db.LoadStats()

	fmt.Printf("Tracked kanji: %d    Questions answered: %d\n\n", st.Len(), st.TotalAnsweredOverall())

	for _, sys := range []catalog.System{catalog.SystemJLPT, catalog.SystemWaniKani} {
		fmt.Printf("%s\n", sys)
		for _, mode := range stats.AllModes() {
			pool := cat.FilterPool(sys, nil, mode.Category())
			items := make([]report.Item, len(pool))
			for i, k := range pool {
				items[i] = k
			}
			avg := report.AverageMastery(items, st, sys, mode)
			fmt.Printf("  %-26s avg mastery %6.2f  (pool %d)\n", mode, avg, len(pool))
		}
		fmt.Println()
	}
	return nil
}
