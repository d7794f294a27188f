package scheduler

import (
	"fmt"
	"math/rand"
)

// Item is the minimal view of a drillable item the scheduler needs.
type Item interface {
	Key() string
}

// Sample draws n distinct items from pool by repeated roulette-wheel
// selection without replacement, using weightOf for per-item weights.
// O(n·|pool|), which is fine for pools in the tens to low thousands.
// An all-zero-weight round falls back to a uniform draw.
func Sample(pool []Item, n int, weightOf func(Item) float64, rng *rand.Rand) ([]Item, error) {
	if n > len(pool) {
		return nil, fmt.Errorf("sample %d from pool of %d", n, len(pool))
	}
	if weightOf == nil {
		return nil, fmt.Errorf("sample: nil weight function")
	}

	remaining := make([]Item, len(pool))
	copy(remaining, pool)
	weights := make([]float64, len(pool))
	for i, it := range remaining {
		weights[i] = weightOf(it)
	}

	picked := make([]Item, 0, n)
	for len(picked) < n {
		total := 0.0
		for _, w := range weights {
			if w > 0 {
				total += w
			}
		}

		idx := 0
		if total <= 0 {
			idx = rng.Intn(len(remaining))
		} else {
			draw := rng.Float64() * total
			cum := 0.0
			for i, w := range weights {
				if w > 0 {
					cum += w
				}
				if draw < cum {
					idx = i
					break
				}
				// Float summation can leave draw just past the final
				// cumulative value; the last index absorbs it.
				idx = i
			}
		}

		picked = append(picked, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		weights = append(weights[:idx], weights[idx+1:]...)
	}
	return picked, nil
}

// SampleUniform draws n distinct items from pool uniformly at random.
func SampleUniform(pool []Item, n int, rng *rand.Rand) ([]Item, error) {
	if n > len(pool) {
		return nil, fmt.Errorf("sample %d from pool of %d", n, len(pool))
	}
	shuffled := make([]Item, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n], nil
}
