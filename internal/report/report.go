// Package report computes read-only aggregates over the stat records.
package report

import (
	"github.com/abhisek/kanjidrill/internal/catalog"
	"github.com/abhisek/kanjidrill/internal/stats"
)

// Item is the minimal view of a pool entry the reporter needs.
type Item interface {
	Key() string
}

// AverageMastery returns the arithmetic mean of mastery over the items in
// pool that have a record for (system, mode). An empty pool, or one with no
// recorded items, yields 0. Never mutates the store.
func AverageMastery(pool []Item, st *stats.Store, sys catalog.System, mode stats.ModeKey) float64 {
	sum := 0.0
	n := 0
	for _, it := range pool {
		b, ok := st.Peek(it.Key(), sys, mode)
		if !ok {
			continue
		}
		sum += b.Mastery
		n++
	}
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}
