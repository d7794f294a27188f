package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kanjidrill/internal/catalog"
	"github.com/abhisek/kanjidrill/internal/profile"
	"github.com/abhisek/kanjidrill/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the learner profile",
	RunE:  runProfile,
}

var profileSetNameCmd = &cobra.Command{
	Use:   "set-name <name>",
	Short: "Change the profile username",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSetName,
}

func init() {
	profileCmd.AddCommand(profileSetNameCmd)
}

func openProfile(cmd *cobra.Command) (*store.Store, *profile.Profile, error) {
	cfg, err := loadFileConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return db, db.LoadProfile(), nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	db, prof, err := openProfile(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Username: %s\n", prof.Username)
	fmt.Printf("Questions answered (prioritized): %d    Sessions: %d\n\n", prof.QuestionCounter, prof.SessionCounter)

	for _, sys := range []catalog.System{catalog.SystemJLPT, catalog.SystemWaniKani} {
		fmt.Printf("%s\n", sys)
		for _, cat := range []catalog.Category{catalog.CategoryMeaning, catalog.CategoryReading} {
			xp := prof.XP[sys][cat]
			level, within, perLevel, pct := profile.LevelProgress(xp)
			fmt.Printf("  %-8s level %d  (%d/%d XP, %d%%)\n", cat, level, within, perLevel, pct)
		}
		fmt.Println()
	}
	return nil
}

func runProfileSetName(cmd *cobra.Command, args []string) error {
	db, prof, err := openProfile(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	prof.Username = args[0]
	if err := db.SaveProfile(prof); err != nil {
		return err
	}
	fmt.Printf("Username set to %s\n", prof.Username)
	return nil
}
