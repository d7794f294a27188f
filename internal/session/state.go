package session

import (
	"github.com/abhisek/kanjidrill/internal/catalog"
	"github.com/abhisek/kanjidrill/internal/scheduler"
	"github.com/abhisek/kanjidrill/internal/stats"
)

// Item is the coordinator's view of a drillable item.
type Item = scheduler.Item

// Phase represents the drill session state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSampling
	PhaseInProgress
	PhaseComplete
)

// MinDrillSize is the minimum viable number of items for a drill.
const MinDrillSize = 4

// Config describes a drill request.
type Config struct {
	System     catalog.System
	Mode       stats.ModeKey
	Count      int
	Prioritize bool
}

// Result records one answered question.
type Result struct {
	ItemKey string
	Correct bool
}

// Outcome summarizes the effect of one answer for display.
type Outcome struct {
	ItemKey  string
	Correct  bool
	XPGained int
	Mastery  float64
}

// Drill is an active session. It is produced by Coordinator.Start and
// consumed one Answer at a time until PhaseComplete.
type Drill struct {
	coord *Coordinator
	cfg   Config

	items     []Item
	index     int
	phase     Phase
	sessionID int
	uid       string
	cooldown  int

	correct int
	results []Result
}

// Phase returns the drill's current phase.
func (d *Drill) Phase() Phase { return d.phase }

// SessionID returns the prioritization session id, 0 when prioritization
// is off.
func (d *Drill) SessionID() int { return d.sessionID }

// UID returns the drill's unique identifier used in the event log.
func (d *Drill) UID() string { return d.uid }

// CooldownTier returns the cooldown tier the drill was sampled under.
func (d *Drill) CooldownTier() int { return d.cooldown }

// Current returns the item awaiting an answer, or nil once complete.
func (d *Drill) Current() Item {
	if d.phase != PhaseInProgress {
		return nil
	}
	return d.items[d.index]
}

// Position returns the zero-based index of the current question.
func (d *Drill) Position() int { return d.index }

// Total returns the number of questions in the drill.
func (d *Drill) Total() int { return len(d.items) }

// CorrectCount returns how many answers so far were correct.
func (d *Drill) CorrectCount() int { return d.correct }

// Results returns the answered questions in order.
func (d *Drill) Results() []Result {
	out := make([]Result, len(d.results))
	copy(out, d.results)
	return out
}
