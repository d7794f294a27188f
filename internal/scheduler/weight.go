// Package scheduler turns performance buckets into sampling weights and
// draws drill items without replacement.
package scheduler

import "github.com/abhisek/kanjidrill/internal/stats"

const (
	// baseWeight keeps every item selectable no matter how strong it is.
	baseWeight = 0.08

	// staleAgeCap caps the staleness boost at 200 questions of age.
	staleAgeCap = 200

	// cooldownFloor is the minimum weight factor for an item answered in the
	// current session under an active cooldown.
	cooldownFloor = 0.20

	minWeight = 0.0001
)

// Weight computes the sampling weight for one bucket. It is a pure function
// of the bucket and the two counters: a Laplace-smoothed error rate boosted
// by staleness, damped while the item is inside its session cooldown.
//
// A zero pw_last_seen means the item has never been answered under
// prioritization and counts as age 0; likewise a zero pw_last_seen_session
// means the item is not in cooldown.
func Weight(b *stats.Bucket, nowQuestion, nowSession, cooldownSessions int) float64 {
	wrongRate := float64(b.PWWrong+1) / float64(b.PWRight+b.PWWrong+2)

	age := 0
	if b.PWLastSeen > 0 && nowQuestion > b.PWLastSeen {
		age = nowQuestion - b.PWLastSeen
	}
	if age > staleAgeCap {
		age = staleAgeCap
	}
	staleMult := 1 + float64(age)/staleAgeCap

	factor := 1.0
	if cooldownSessions > 0 && b.PWLastSeenSession > 0 {
		sessAge := nowSession - b.PWLastSeenSession
		if sessAge < 0 {
			sessAge = 0
		}
		if sessAge <= cooldownSessions {
			factor = cooldownFloor + (1-cooldownFloor)*(float64(sessAge)/float64(cooldownSessions))
		}
	}

	w := (baseWeight + wrongRate*staleMult) * factor
	if w < minWeight {
		w = minWeight
	}
	return w
}
