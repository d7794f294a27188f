// Package mastery computes the per-bucket mastery estimate: time decay in
// question-counter units, diminishing-returns gains, and the certification
// gate that lets mastery reach 100.
package mastery

import (
	"math"

	"github.com/abhisek/kanjidrill/internal/catalog"
	"github.com/abhisek/kanjidrill/internal/stats"
)

const (
	// DecayMinAge is the minimum question-counter age before decay applies,
	// so back-to-back questions never decay each other.
	DecayMinAge = 20

	// decayTierAge splits slow decay from fast decay.
	decayTierAge = 200

	// Decay rates in mastery points per 100 questions of age.
	slowDecayRate = 0.5
	fastDecayRate = 1.0

	baseGainReading = 3.5
	baseGainDefault = 2.5

	// CertStreak and CertEncounters gate promotion to mastery 100.
	CertStreak     = 7
	CertEncounters = 25

	minPenalty  = 12.0
	penaltyRate = 0.15
)

// Update applies one answered question to the bucket: decay by elapsed
// question age, then the correct/incorrect mastery update, then the lifetime
// and prioritization-scoped counters. nowQuestion is the global question
// counter after this answer; sessionID is the active drill session id (0 when
// prioritization is off); totalEncounters is the item's lifetime encounter
// count including this answer.
func Update(b *stats.Bucket, correct bool, cat catalog.Category, nowQuestion, sessionID, totalEncounters int, prioritized bool) {
	applyDecay(b, nowQuestion)

	if correct {
		applyCorrect(b, cat, totalEncounters, prioritized)
	} else {
		applyWrong(b)
	}

	b.MasteryLastSeen = nowQuestion
	b.Mastery = round2(b.Mastery)

	if correct {
		b.Right++
		b.Streak++
	} else {
		b.Wrong++
		b.Streak = 0
	}

	if prioritized {
		if correct {
			b.PWRight++
			b.PWStreak++
		} else {
			b.PWWrong++
			b.PWStreak = 0
		}
		b.PWLastSeen = nowQuestion
		b.PWLastSeenSession = sessionID
	}
}

// applyDecay lowers mastery by the elapsed question age. A zero
// mastery_last_seen means the bucket has never been updated, which counts as
// age 0 so brand-new items are not penalized.
func applyDecay(b *stats.Bucket, nowQuestion int) {
	if b.MasteryLastSeen == 0 {
		return
	}
	age := nowQuestion - b.MasteryLastSeen
	if age < DecayMinAge {
		return
	}

	rate := slowDecayRate
	if age >= decayTierAge {
		rate = fastDecayRate
	}
	b.Mastery -= float64(age) / 100 * rate
	if b.Mastery < 0 {
		b.Mastery = 0
	}
}

func applyCorrect(b *stats.Bucket, cat catalog.Category, totalEncounters int, prioritized bool) {
	base := baseGainDefault
	if cat == catalog.CategoryReading {
		base = baseGainReading
	}
	gain := base * (1 - b.Mastery/100)
	if prioritized {
		// Adaptive mode grows slower so a weak item can't certify off a
		// single lucky streak of easy reappearances.
		gain /= 2
	}

	b.MasteryStreak++
	b.Mastery += gain

	if b.Mastery >= 99 {
		if b.MasteryStreak >= CertStreak && totalEncounters >= CertEncounters {
			b.Mastery = 100
		} else {
			b.Mastery = 99
		}
	}
}

func applyWrong(b *stats.Bucket) {
	penalty := b.Mastery * penaltyRate
	if penalty < minPenalty {
		penalty = minPenalty
	}
	b.Mastery -= penalty
	if b.Mastery < 0 {
		b.Mastery = 0
	}
	b.MasteryStreak = 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
