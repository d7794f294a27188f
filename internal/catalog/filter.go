package catalog

import (
	"fmt"
	"math/rand"
)

// FilterPool returns the candidate pool for a drill: entries matching one of
// the requested levels under the given system that carry the fields the
// category needs. Meaning drills need at least one meaning; reading drills
// need both on and kun readings.
func (c *Catalog) FilterPool(sys System, levels map[int]bool, cat Category) []Kanji {
	var pool []Kanji
	for _, k := range c.kanji {
		level := k.JLPTLevel
		if sys == SystemWaniKani {
			level = k.WKLevel
		}
		if len(levels) > 0 && !levels[level] {
			continue
		}

		switch cat {
		case CategoryMeaning:
			if len(k.MeaningsFor(sys)) == 0 {
				continue
			}
		case CategoryReading:
			if len(k.OnReadingsFor(sys)) == 0 || len(k.KunReadingsFor(sys)) == 0 {
				continue
			}
		default:
			continue
		}
		pool = append(pool, k)
	}
	return pool
}

// Distractors draws n random entries from pool, excluding the entry whose
// key matches exclude. Used to fill multiple-choice options; the option text
// itself is the caller's concern.
func Distractors(pool []Kanji, exclude string, n int, rng *rand.Rand) ([]Kanji, error) {
	var candidates []Kanji
	for _, k := range pool {
		if k.Key() != exclude {
			candidates = append(candidates, k)
		}
	}
	if n > len(candidates) {
		return nil, fmt.Errorf("requested %d distractors, only %d available", n, len(candidates))
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates[:n], nil
}
