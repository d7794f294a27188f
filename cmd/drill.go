package cmd

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/kanjidrill/internal/catalog"
	"github.com/abhisek/kanjidrill/internal/config"
	"github.com/abhisek/kanjidrill/internal/report"
	"github.com/abhisek/kanjidrill/internal/session"
	"github.com/abhisek/kanjidrill/internal/stats"
	"github.com/abhisek/kanjidrill/internal/store"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Run a drill session",
	RunE:  runDrill,
}

func init() {
	drillCmd.Flags().String("system", "", "Classification system: jlpt or wanikani")
	drillCmd.Flags().String("mode", "", "Drill mode: choice, writing, onyomi, or kunyomi")
	drillCmd.Flags().Int("count", 0, "Number of questions")
	drillCmd.Flags().IntSlice("levels", nil, "Level filter (e.g. 5,4 for JLPT N5+N4)")
	drillCmd.Flags().Bool("prioritize", false, "Weight selection toward weak and stale kanji")
	drillCmd.Flags().String("kanji", "", "Path to the kanji dataset")
}

func runDrill(cmd *cobra.Command, args []string) error {
	cfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}

	req, kanjiPath, err := resolveDrillRequest(cmd, cfg)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(kanjiPath)
	if err != nil {
		return err
	}
	if cat.Len() == 0 {
		return fmt.Errorf("no kanji dataset at %s", kanjiPath)
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
	prof := db.LoadProfile()

	levels := resolveLevels(cmd, cfg, req.System)
	pool := cat.FilterPool(req.System, levels, req.Mode.Category())

	items := make([]session.Item, len(pool))
	byKey := make(map[string]catalog.Kanji, len(pool))
	for i, k := range pool {
		items[i] = k
		byKey[k.Key()] = k
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	coord := session.NewCoordinator(st, prof, db, db, rng)
	drill, err := coord.Start(items, req)
	if err != nil {
		return err
	}

	in := bufio.NewScanner(os.Stdin)
	xpTotal := 0
	for drill.Phase() == session.PhaseInProgress {
		k := byKey[drill.Current().Key()]
		fmt.Printf("\n[%d/%d] ", drill.Position()+1, drill.Total())

		correct, err := askQuestion(in, k, pool, req, rng)
		if err != nil {
			return err
		}

		outcome, err := drill.Answer(correct)
		if err != nil {
			return err
		}
		xpTotal += outcome.XPGained
		if correct {
			fmt.Printf("Correct! (+%d XP, mastery %.2f)\n", outcome.XPGained, outcome.Mastery)
		} else {
			fmt.Printf("Wrong — %s (+%d XP, mastery %.2f)\n", expectedAnswer(k, req), outcome.XPGained, outcome.Mastery)
		}
	}

	poolItems := make([]report.Item, len(pool))
	for i, k := range pool {
		poolItems[i] = k
	}
	fmt.Printf("\nDone: %d/%d correct, %d XP earned.\n", drill.CorrectCount(), drill.Total(), xpTotal)
	fmt.Printf("Pool average mastery (%s): %.2f\n", req.Mode, report.AverageMastery(poolItems, st, req.System, req.Mode))
	return nil
}

// resolveDrillRequest layers CLI flags over the config file over defaults.
func resolveDrillRequest(cmd *cobra.Command, cfg config.FileConfig) (session.Config, string, error) {
	systemName := "jlpt"
	if cfg.Drill.System != nil {
		systemName = *cfg.Drill.System
	}
	if s, _ := cmd.Flags().GetString("system"); s != "" {
		systemName = s
	}
	sys, err := catalog.ParseSystem(systemName)
	if err != nil {
		return session.Config{}, "", err
	}

	modeName := "choice"
	if cfg.Drill.Mode != nil {
		modeName = *cfg.Drill.Mode
	}
	if m, _ := cmd.Flags().GetString("mode"); m != "" {
		modeName = m
	}
	mode, err := stats.ParseMode(modeName)
	if err != nil {
		return session.Config{}, "", err
	}

	count := 10
	if cfg.Drill.Count != nil {
		count = *cfg.Drill.Count
	}
	if n, _ := cmd.Flags().GetInt("count"); n > 0 {
		count = n
	}

	prioritize := false
	if cfg.Drill.Prioritize != nil {
		prioritize = *cfg.Drill.Prioritize
	}
	if cmd.Flags().Changed("prioritize") {
		prioritize, _ = cmd.Flags().GetBool("prioritize")
	}

	kanjiPath := config.DefaultKanjiPath()
	if cfg.Data.Kanji != nil && *cfg.Data.Kanji != "" {
		kanjiPath = *cfg.Data.Kanji
	}
	if p, _ := cmd.Flags().GetString("kanji"); p != "" {
		kanjiPath = p
	}

	return session.Config{
		System:     sys,
		Mode:       mode,
		Count:      count,
		Prioritize: prioritize,
	}, kanjiPath, nil
}

func resolveLevels(cmd *cobra.Command, cfg config.FileConfig, sys catalog.System) map[int]bool {
	var list []int
	if sys == catalog.SystemWaniKani {
		list = cfg.Drill.WKLevels
	} else {
		list = cfg.Drill.JLPTLevels
	}
	if flagLevels, _ := cmd.Flags().GetIntSlice("levels"); len(flagLevels) > 0 {
		list = flagLevels
	}

	levels := make(map[int]bool, len(list))
	for _, l := range list {
		levels[l] = true
	}
	return levels
}

// askQuestion prompts for and reads one answer, returning correctness.
func askQuestion(in *bufio.Scanner, k catalog.Kanji, pool []catalog.Kanji, req session.Config, rng *rand.Rand) (bool, error) {
	switch req.Mode {
	case stats.ModeMeaningChoice:
		return askMultipleChoice(in, k, pool, req.System, rng)
	case stats.ModeMeaningWriting:
		fmt.Printf("Meaning of %s? ", k.Character)
		answer, err := readLine(in)
		if err != nil {
			return false, err
		}
		return matchAny(answer, k.MeaningsFor(req.System)), nil
	case stats.ModeReadingOn:
		fmt.Printf("On'yomi of %s? ", k.Character)
		answer, err := readLine(in)
		if err != nil {
			return false, err
		}
		return matchAny(answer, k.OnReadingsFor(req.System)), nil
	case stats.ModeReadingKun:
		fmt.Printf("Kun'yomi of %s? ", k.Character)
		answer, err := readLine(in)
		if err != nil {
			return false, err
		}
		return matchAny(answer, k.KunReadingsFor(req.System)), nil
	}
	return false, fmt.Errorf("unknown drill mode %q", req.Mode)
}

func askMultipleChoice(in *bufio.Scanner, k catalog.Kanji, pool []catalog.Kanji, sys catalog.System, rng *rand.Rand) (bool, error) {
	correct := firstOf(k.MeaningsFor(sys))

	options := []string{correct}
	distractors, err := catalog.Distractors(pool, k.Key(), 3, rng)
	if err != nil {
		return false, err
	}
	for _, d := range distractors {
		options = append(options, firstOf(d.MeaningsFor(sys)))
	}
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	fmt.Printf("Meaning of %s?\n", k.Character)
	for i, opt := range options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	fmt.Print("> ")

	answer, err := readLine(in)
	if err != nil {
		return false, err
	}
	choice, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || choice < 1 || choice > len(options) {
		return false, nil
	}
	return options[choice-1] == correct, nil
}

func expectedAnswer(k catalog.Kanji, req session.Config) string {
	switch req.Mode {
	case stats.ModeReadingOn:
		return strings.Join(k.OnReadingsFor(req.System), ", ")
	case stats.ModeReadingKun:
		return strings.Join(k.KunReadingsFor(req.System), ", ")
	default:
		return strings.Join(k.MeaningsFor(req.System), ", ")
	}
}

func readLine(in *bufio.Scanner) (string, error) {
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("input closed")
	}
	return in.Text(), nil
}

func matchAny(answer string, accepted []string) bool {
	got := strings.ToLower(strings.TrimSpace(answer))
	if got == "" {
		return false
	}
	for _, a := range accepted {
		if got == strings.ToLower(strings.TrimSpace(a)) {
			return true
		}
	}
	return false
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
