// Package session orchestrates drill sessions: sampling the item sequence,
// feeding answers through the mastery engine, and persisting after every
// mutation.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/kanjidrill/internal/profile"
	"github.com/abhisek/kanjidrill/internal/scheduler"
	"github.com/abhisek/kanjidrill/internal/stats"
)

// ErrPoolTooSmall is returned when fewer than MinDrillSize items survive
// filtering. The session is refused rather than started degenerate.
var ErrPoolTooSmall = errors.New("need at least 4 items to start a drill")

// ErrNotInProgress is returned by Answer outside PhaseInProgress.
var ErrNotInProgress = errors.New("drill is not in progress")

// Saver persists the stats and profile documents. Implementations are
// best-effort; the coordinator logs failures and keeps going.
type Saver interface {
	SaveStats(st *stats.Store) error
	SaveProfile(p *profile.Profile) error
}

// EventLog records session and answer events. Best-effort, like Saver.
type EventLog interface {
	AppendSessionEvent(ev SessionEvent) error
	AppendAnswerEvent(ev AnswerEvent) error
}

// Coordinator runs drill sessions against a stat store and profile.
type Coordinator struct {
	stats   *stats.Store
	profile *profile.Profile
	saver   Saver
	events  EventLog
	rng     *rand.Rand
}

// NewCoordinator wires a coordinator. saver and events may be nil (nothing
// is persisted or logged); rng may be nil for a time-seeded source.
func NewCoordinator(st *stats.Store, p *profile.Profile, saver Saver, events EventLog, rng *rand.Rand) *Coordinator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Coordinator{stats: st, profile: p, saver: saver, events: events, rng: rng}
}

// CooldownTier maps a session's pool coverage to the number of sessions an
// answered item is suppressed. A drill that covers most of the pool cannot
// afford to suppress anything.
func CooldownTier(requested, poolSize int) int {
	if poolSize <= 0 {
		return 0
	}
	coverage := float64(requested) / float64(poolSize)
	switch {
	case coverage >= 0.40:
		return 0
	case coverage >= 0.25:
		return 1
	case coverage >= 0.12:
		return 2
	default:
		return 3
	}
}

// Start begins a drill over pool. The requested count is clamped to the pool
// and raised to the minimum; pools below MinDrillSize are refused. With
// prioritization enabled the drill is sampled by weakness weight, otherwise
// uniformly at random.
func (c *Coordinator) Start(pool []Item, cfg Config) (*Drill, error) {
	requested := cfg.Count
	if requested < MinDrillSize {
		requested = MinDrillSize
	}
	if requested > len(pool) {
		requested = len(pool)
	}
	if requested < MinDrillSize {
		return nil, fmt.Errorf("%w: %d available", ErrPoolTooSmall, len(pool))
	}

	d := &Drill{
		coord:    c,
		cfg:      cfg,
		phase:    PhaseSampling,
		uid:      uuid.NewString(),
		cooldown: CooldownTier(requested, len(pool)),
	}

	if cfg.Prioritize {
		d.sessionID = c.profile.NextSession()
		c.persistProfile()
		d.items = c.sampleWeighted(pool, requested, cfg, d.sessionID, d.cooldown)
	} else {
		d.items = c.sampleFallback(pool, requested)
	}

	d.phase = PhaseInProgress
	c.logSessionEvent(d, "start")
	return d, nil
}

// sampleWeighted draws the drill sequence by weakness weight, falling back
// to uniform sampling on any failure. Degraded sampling is never surfaced.
func (c *Coordinator) sampleWeighted(pool []Item, n int, cfg Config, sessionID, cooldown int) []Item {
	nowQuestion := c.profile.QuestionCounter
	weightOf := func(it Item) float64 {
		b, ok := c.stats.Peek(it.Key(), cfg.System, cfg.Mode)
		if !ok {
			b = &stats.Bucket{}
		}
		return scheduler.Weight(b, nowQuestion, sessionID, cooldown)
	}

	items, err := scheduler.Sample(pool, n, weightOf, c.rng)
	if err != nil {
		warnf("weighted sampling failed, using uniform: %v", err)
		return c.sampleFallback(pool, n)
	}
	return items
}

func (c *Coordinator) sampleFallback(pool []Item, n int) []Item {
	items, err := scheduler.SampleUniform(pool, n, c.rng)
	if err != nil {
		// n was clamped to the pool above, so this cannot happen; take the
		// pool as-is rather than fail the session.
		warnf("uniform sampling failed: %v", err)
		return pool[:n]
	}
	return items
}

func (c *Coordinator) persistStats() {
	if c.saver == nil {
		return
	}
	if err := c.saver.SaveStats(c.stats); err != nil {
		warnf("failed to save stats: %v", err)
	}
}

func (c *Coordinator) persistProfile() {
	if c.saver == nil {
		return
	}
	if err := c.saver.SaveProfile(c.profile); err != nil {
		warnf("failed to save profile: %v", err)
	}
}

func (c *Coordinator) logSessionEvent(d *Drill, action string) {
	if c.events == nil {
		return
	}
	err := c.events.AppendSessionEvent(SessionEvent{
		SessionUID:      d.uid,
		Action:          action,
		System:          d.cfg.System,
		Mode:            d.cfg.Mode,
		SessionID:       d.sessionID,
		CooldownTier:    d.cooldown,
		Prioritized:     d.cfg.Prioritize,
		QuestionsServed: len(d.results),
		CorrectAnswers:  d.correct,
	})
	if err != nil {
		warnf("failed to log session event: %v", err)
	}
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
