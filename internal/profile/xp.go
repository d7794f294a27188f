package profile

import (
	"math"

	"github.com/abhisek/kanjidrill/internal/catalog"
)

// XPPerLevel is the XP required to advance one level within a bucket.
const XPPerLevel = 500

// XPForAnswer returns the XP earned by one answer. Reading pays slightly
// more; a wrong answer still earns 15% of the base.
func XPForAnswer(cat catalog.Category, correct bool) int {
	base := 10
	if cat == catalog.CategoryReading {
		base = 12
	}
	if correct {
		return base
	}
	return int(math.Round(float64(base) * 0.15))
}

// LevelProgress breaks an XP total into level, XP within the level, and the
// percentage toward the next level.
func LevelProgress(xp int) (level, within, perLevel, pct int) {
	level = xp/XPPerLevel + 1
	within = xp % XPPerLevel
	pct = within * 100 / XPPerLevel
	return level, within, XPPerLevel, pct
}
