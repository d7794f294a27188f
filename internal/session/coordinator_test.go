package session

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/abhisek/kanjidrill/internal/catalog"
	"github.com/abhisek/kanjidrill/internal/profile"
	"github.com/abhisek/kanjidrill/internal/stats"
)

type testItem string

func (t testItem) Key() string { return string(t) }

func testPool(n int) []Item {
	pool := make([]Item, n)
	for i := range pool {
		pool[i] = testItem(string(rune('a' + i)))
	}
	return pool
}

type memorySaver struct {
	statsSaves   int
	profileSaves int
	failStats    bool
}

func (m *memorySaver) SaveStats(*stats.Store) error {
	m.statsSaves++
	if m.failStats {
		return errors.New("disk full")
	}
	return nil
}

func (m *memorySaver) SaveProfile(*profile.Profile) error {
	m.profileSaves++
	return nil
}

type memoryEventLog struct {
	sessions []SessionEvent
	answers  []AnswerEvent
}

func (m *memoryEventLog) AppendSessionEvent(ev SessionEvent) error {
	m.sessions = append(m.sessions, ev)
	return nil
}

func (m *memoryEventLog) AppendAnswerEvent(ev AnswerEvent) error {
	m.answers = append(m.answers, ev)
	return nil
}

func newTestCoordinator(saver Saver, events EventLog) (*Coordinator, *stats.Store, *profile.Profile) {
	st := stats.NewStore()
	p := profile.New()
	rng := rand.New(rand.NewSource(99))
	return NewCoordinator(st, p, saver, events, rng), st, p
}

func TestCooldownTier(t *testing.T) {
	cases := []struct {
		requested, poolSize, want int
	}{
		{4, 10, 0},  // coverage 0.40
		{10, 10, 0}, // full pool
		{5, 20, 1},  // 0.25
		{6, 20, 1},  // 0.30
		{5, 40, 2},  // 0.125
		{4, 100, 3}, // 0.04
		{4, 0, 0},   // degenerate pool
	}
	for _, tc := range cases {
		if got := CooldownTier(tc.requested, tc.poolSize); got != tc.want {
			t.Errorf("CooldownTier(%d, %d) = %d, want %d", tc.requested, tc.poolSize, got, tc.want)
		}
	}
}

func TestStart_RefusesTinyPool(t *testing.T) {
	c, _, _ := newTestCoordinator(nil, nil)
	_, err := c.Start(testPool(3), Config{System: catalog.SystemJLPT, Mode: stats.ModeMeaningChoice, Count: 10})
	if !errors.Is(err, ErrPoolTooSmall) {
		t.Errorf("err = %v, want ErrPoolTooSmall", err)
	}
}

func TestStart_ClampsCountToPool(t *testing.T) {
	c, _, _ := newTestCoordinator(nil, nil)
	d, err := c.Start(testPool(6), Config{System: catalog.SystemJLPT, Mode: stats.ModeMeaningChoice, Count: 50})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if d.Total() != 6 {
		t.Errorf("Total = %d, want 6", d.Total())
	}
}

func TestStart_RaisesCountToMinimum(t *testing.T) {
	c, _, _ := newTestCoordinator(nil, nil)
	d, err := c.Start(testPool(10), Config{System: catalog.SystemJLPT, Mode: stats.ModeMeaningChoice, Count: 1})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if d.Total() != MinDrillSize {
		t.Errorf("Total = %d, want %d", d.Total(), MinDrillSize)
	}
	// Requesting 4 of 10 covers 40% of the pool: no cooldown.
	if d.CooldownTier() != 0 {
		t.Errorf("CooldownTier = %d, want 0", d.CooldownTier())
	}
}

func TestStart_SessionCounterOnlyWhenPrioritized(t *testing.T) {
	c, _, p := newTestCoordinator(nil, nil)

	if _, err := c.Start(testPool(8), Config{System: catalog.SystemJLPT, Mode: stats.ModeMeaningChoice, Count: 4}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if p.SessionCounter != 0 {
		t.Errorf("SessionCounter = %d, want 0 for unprioritized drill", p.SessionCounter)
	}

	d, err := c.Start(testPool(8), Config{System: catalog.SystemJLPT, Mode: stats.ModeMeaningChoice, Count: 4, Prioritize: true})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if p.SessionCounter != 1 {
		t.Errorf("SessionCounter = %d, want 1", p.SessionCounter)
	}
	if d.SessionID() != 1 {
		t.Errorf("SessionID = %d, want 1", d.SessionID())
	}
}

func TestDrill_FullRun(t *testing.T) {
	saver := &memorySaver{}
	events := &memoryEventLog{}
	c, st, p := newTestCoordinator(saver, events)

	cfg := Config{System: catalog.SystemJLPT, Mode: stats.ModeReadingOn, Count: 4, Prioritize: true}
	d, err := c.Start(testPool(8), cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if d.Phase() != PhaseInProgress {
		t.Fatalf("Phase = %v, want PhaseInProgress", d.Phase())
	}

	answers := []bool{true, false, true, true}
	for i, correct := range answers {
		item := d.Current()
		if item == nil {
			t.Fatalf("Current() = nil at position %d", i)
		}
		out, err := d.Answer(correct)
		if err != nil {
			t.Fatalf("Answer %d: %v", i, err)
		}
		if out.ItemKey != item.Key() {
			t.Errorf("Outcome.ItemKey = %q, want %q", out.ItemKey, item.Key())
		}
		if correct && out.XPGained != 12 {
			t.Errorf("XPGained = %d, want 12 for correct reading answer", out.XPGained)
		}
	}

	if d.Phase() != PhaseComplete {
		t.Errorf("Phase = %v, want PhaseComplete", d.Phase())
	}
	if d.Current() != nil {
		t.Error("Current() should be nil after completion")
	}
	if d.CorrectCount() != 3 {
		t.Errorf("CorrectCount = %d, want 3", d.CorrectCount())
	}
	if _, err := d.Answer(true); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("Answer after completion: err = %v, want ErrNotInProgress", err)
	}

	// Each answer advanced the prioritized question counter.
	if p.QuestionCounter != 4 {
		t.Errorf("QuestionCounter = %d, want 4", p.QuestionCounter)
	}
	if st.TotalAnsweredOverall() != 4 {
		t.Errorf("TotalAnsweredOverall = %d, want 4", st.TotalAnsweredOverall())
	}

	// Every answer is a complete transaction: stats and profile saved each
	// time, plus the profile save when the session counter advanced.
	if saver.statsSaves != 4 {
		t.Errorf("statsSaves = %d, want 4", saver.statsSaves)
	}
	if saver.profileSaves != 5 {
		t.Errorf("profileSaves = %d, want 5", saver.profileSaves)
	}

	if len(events.sessions) != 2 {
		t.Fatalf("session events = %d, want start+complete", len(events.sessions))
	}
	if events.sessions[0].Action != "start" || events.sessions[1].Action != "complete" {
		t.Errorf("session actions = %q, %q", events.sessions[0].Action, events.sessions[1].Action)
	}
	if events.sessions[1].CorrectAnswers != 3 || events.sessions[1].QuestionsServed != 4 {
		t.Errorf("complete event = %+v", events.sessions[1])
	}
	if len(events.answers) != 4 {
		t.Errorf("answer events = %d, want 4", len(events.answers))
	}
	for i, ev := range events.answers {
		if ev.Position != i {
			t.Errorf("answer event %d position = %d", i, ev.Position)
		}
		if ev.SessionUID != d.UID() {
			t.Errorf("answer event %d has UID %q, want %q", i, ev.SessionUID, d.UID())
		}
	}
}

func TestDrill_UnprioritizedLeavesCountersAlone(t *testing.T) {
	c, st, p := newTestCoordinator(nil, nil)
	d, err := c.Start(testPool(6), Config{System: catalog.SystemWaniKani, Mode: stats.ModeMeaningChoice, Count: 4})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	key := d.Current().Key()
	if _, err := d.Answer(true); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if p.QuestionCounter != 0 {
		t.Errorf("QuestionCounter = %d, want 0", p.QuestionCounter)
	}
	b, ok := st.Peek(key, catalog.SystemWaniKani, stats.ModeMeaningChoice)
	if !ok {
		t.Fatal("bucket missing after answer")
	}
	if b.Right != 1 {
		t.Errorf("Right = %d, want 1: lifetime counters track regardless", b.Right)
	}
	if b.PWRight != 0 {
		t.Errorf("PWRight = %d, want 0 without prioritization", b.PWRight)
	}
}

func TestDrill_SaverFailureIsNotFatal(t *testing.T) {
	saver := &memorySaver{failStats: true}
	c, _, _ := newTestCoordinator(saver, nil)
	d, err := c.Start(testPool(6), Config{System: catalog.SystemJLPT, Mode: stats.ModeMeaningChoice, Count: 4})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := d.Answer(true); err != nil {
		t.Errorf("Answer: %v, persistence failures must not abort the drill", err)
	}
}

func TestDrill_SampledItemsAreDistinct(t *testing.T) {
	c, _, _ := newTestCoordinator(nil, nil)
	d, err := c.Start(testPool(12), Config{System: catalog.SystemJLPT, Mode: stats.ModeReadingKun, Count: 8, Prioritize: true})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	seen := make(map[string]bool)
	for d.Phase() == PhaseInProgress {
		key := d.Current().Key()
		if seen[key] {
			t.Fatalf("item %q served twice", key)
		}
		seen[key] = true
		if _, err := d.Answer(true); err != nil {
			t.Fatalf("Answer: %v", err)
		}
	}
	if len(seen) != 8 {
		t.Errorf("distinct items = %d, want 8", len(seen))
	}
}
