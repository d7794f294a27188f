package session

import (
	"github.com/abhisek/kanjidrill/internal/mastery"
)

// Answer processes the learner's response to the current question. Each call
// is a complete transaction: counters, mastery update, XP, persistence, and
// event logging all happen before the next question is presented.
func (d *Drill) Answer(correct bool) (*Outcome, error) {
	if d.phase != PhaseInProgress {
		return nil, ErrNotInProgress
	}

	c := d.coord
	item := d.items[d.index]
	key := item.Key()

	c.stats.EnsureEntry(key)
	c.stats.RecordEncounter(key)

	nowQuestion := c.profile.QuestionCounter
	if d.cfg.Prioritize {
		nowQuestion = c.profile.NextQuestion()
	}

	b := c.stats.Bucket(key, d.cfg.System, d.cfg.Mode)
	mastery.Update(b, correct, d.cfg.Mode.Category(), nowQuestion, d.sessionID,
		c.stats.TotalEncounters(key), d.cfg.Prioritize)

	gained := c.profile.ApplyAnswer(d.cfg.System, d.cfg.Mode.Category(), correct)

	c.persistStats()
	c.persistProfile()

	if c.events != nil {
		err := c.events.AppendAnswerEvent(AnswerEvent{
			SessionUID:      d.uid,
			ItemKey:         key,
			System:          d.cfg.System,
			Mode:            d.cfg.Mode,
			Correct:         correct,
			Prioritized:     d.cfg.Prioritize,
			QuestionCounter: nowQuestion,
			Position:        d.index,
		})
		if err != nil {
			warnf("failed to log answer event: %v", err)
		}
	}

	d.results = append(d.results, Result{ItemKey: key, Correct: correct})
	if correct {
		d.correct++
	}

	d.index++
	if d.index >= len(d.items) {
		d.phase = PhaseComplete
		c.logSessionEvent(d, "complete")
	}

	return &Outcome{
		ItemKey:  key,
		Correct:  correct,
		XPGained: gained,
		Mastery:  b.Mastery,
	}, nil
}
