// Package stats owns the per-item, per-mode performance records.
package stats

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/kanjidrill/internal/catalog"
)

// Bucket is the performance record for one item under one classification
// system and one mode key. The pw_* fields are scoped to answers given while
// weakness prioritization was active; mastery fields drive certification.
type Bucket struct {
	Right             int     `json:"right"`
	Wrong             int     `json:"wrong"`
	Streak            int     `json:"streak"`
	PWRight           int     `json:"pw_right"`
	PWWrong           int     `json:"pw_wrong"`
	PWStreak          int     `json:"pw_streak"`
	PWLastSeen        int     `json:"pw_last_seen"`
	PWLastSeenSession int     `json:"pw_last_seen_session"`
	Mastery           float64 `json:"mastery"`
	MasteryStreak     int     `json:"mastery_streak"`
	MasteryLastSeen   int     `json:"mastery_last_seen"`
}

// ModeSet maps mode keys to buckets under one classification system.
type ModeSet map[ModeKey]*Bucket

// ItemStats is the full record for one item: a lifetime encounter counter
// plus a bucket per system and mode.
type ItemStats struct {
	TotalEncounters int     `json:"total_encounters"`
	JLPT            ModeSet `json:"JLPT"`
	WaniKani        ModeSet `json:"WaniKani"`
}

func (is *ItemStats) modeSet(sys catalog.System) ModeSet {
	if sys == catalog.SystemWaniKani {
		return is.WaniKani
	}
	return is.JLPT
}

// normalize fills in any missing mode sets or buckets with zero defaults.
// Existing values are never touched, so re-running it is safe.
func (is *ItemStats) normalize() {
	if is.JLPT == nil {
		is.JLPT = make(ModeSet)
	}
	if is.WaniKani == nil {
		is.WaniKani = make(ModeSet)
	}
	for _, set := range []ModeSet{is.JLPT, is.WaniKani} {
		for _, mode := range AllModes() {
			if set[mode] == nil {
				set[mode] = &Bucket{}
			}
		}
	}
}

// Store is the in-memory stat record store, keyed by item identity.
// Callers are responsible for persisting after mutation.
type Store struct {
	items map[string]*ItemStats
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]*ItemStats)}
}

// Decode builds a store from a persisted stats document, normalizing every
// record so older documents pick up fields added since they were written.
func Decode(doc []byte) (*Store, error) {
	items := make(map[string]*ItemStats)
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &items); err != nil {
			return nil, fmt.Errorf("decode stats document: %w", err)
		}
	}
	s := &Store{items: items}
	for key, is := range items {
		if is == nil {
			items[key] = &ItemStats{}
			is = items[key]
		}
		is.normalize()
	}
	return s, nil
}

// Encode serializes the store as the stats document.
func (s *Store) Encode() ([]byte, error) {
	doc, err := json.Marshal(s.items)
	if err != nil {
		return nil, fmt.Errorf("encode stats document: %w", err)
	}
	return doc, nil
}

// EnsureEntry guarantees a fully populated record exists for key. Calling it
// on an existing record fills gaps only; nothing is reset.
func (s *Store) EnsureEntry(key string) *ItemStats {
	is, ok := s.items[key]
	if !ok {
		is = &ItemStats{}
		s.items[key] = is
	}
	is.normalize()
	return is
}

// Bucket returns the bucket for (key, system, mode), creating the record
// lazily if needed.
func (s *Store) Bucket(key string, sys catalog.System, mode ModeKey) *Bucket {
	return s.EnsureEntry(key).modeSet(sys)[mode]
}

// Peek returns the bucket for (key, system, mode) without creating anything.
func (s *Store) Peek(key string, sys catalog.System, mode ModeKey) (*Bucket, bool) {
	is, ok := s.items[key]
	if !ok {
		return nil, false
	}
	set := is.modeSet(sys)
	if set == nil {
		return nil, false
	}
	b, ok := set[mode]
	if !ok || b == nil {
		return nil, false
	}
	return b, true
}

// RecordEncounter increments the item's lifetime encounter counter.
func (s *Store) RecordEncounter(key string) {
	s.EnsureEntry(key).TotalEncounters++
}

// TotalEncounters returns the lifetime encounter count for key, 0 if the
// item has never been seen.
func (s *Store) TotalEncounters(key string) int {
	if is, ok := s.items[key]; ok {
		return is.TotalEncounters
	}
	return 0
}

// TotalAnsweredOverall sums encounter counts across every item.
func (s *Store) TotalAnsweredOverall() int {
	total := 0
	for _, is := range s.items {
		total += is.TotalEncounters
	}
	return total
}

// Len returns the number of tracked items.
func (s *Store) Len() int { return len(s.items) }
