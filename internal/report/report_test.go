package report

import (
	"testing"

	"github.com/abhisek/kanjidrill/internal/catalog"
	"github.com/abhisek/kanjidrill/internal/stats"
)

type poolItem string

func (p poolItem) Key() string { return string(p) }

func items(keys ...string) []Item {
	out := make([]Item, len(keys))
	for i, k := range keys {
		out[i] = poolItem(k)
	}
	return out
}

func TestAverageMastery(t *testing.T) {
	st := stats.NewStore()
	st.Bucket("水", catalog.SystemJLPT, stats.ModeReadingOn).Mastery = 80
	st.Bucket("火", catalog.SystemJLPT, stats.ModeReadingOn).Mastery = 40

	got := AverageMastery(items("水", "火"), st, catalog.SystemJLPT, stats.ModeReadingOn)
	if got != 60 {
		t.Errorf("AverageMastery = %v, want 60", got)
	}
}

func TestAverageMastery_EmptyPool(t *testing.T) {
	st := stats.NewStore()
	if got := AverageMastery(nil, st, catalog.SystemJLPT, stats.ModeMeaningChoice); got != 0 {
		t.Errorf("AverageMastery = %v, want 0", got)
	}
}

func TestAverageMastery_NoRecordedItems(t *testing.T) {
	st := stats.NewStore()
	got := AverageMastery(items("水", "火"), st, catalog.SystemJLPT, stats.ModeMeaningChoice)
	if got != 0 {
		t.Errorf("AverageMastery = %v, want 0", got)
	}
}

func TestAverageMastery_IgnoresUnrecordedItems(t *testing.T) {
	// Only recorded items enter the mean: one record at 90 among two
	// unrecorded items still averages 90, not 30.
	st := stats.NewStore()
	st.Bucket("金", catalog.SystemWaniKani, stats.ModeMeaningWriting).Mastery = 90

	got := AverageMastery(items("金", "木", "土"), st, catalog.SystemWaniKani, stats.ModeMeaningWriting)
	if got != 90 {
		t.Errorf("AverageMastery = %v, want 90", got)
	}
}

func TestAverageMastery_DoesNotCreateRecords(t *testing.T) {
	st := stats.NewStore()
	AverageMastery(items("水"), st, catalog.SystemJLPT, stats.ModeReadingKun)
	if st.Len() != 0 {
		t.Errorf("reporting created %d records", st.Len())
	}
}

func TestAverageMastery_ModesAreIndependent(t *testing.T) {
	st := stats.NewStore()
	st.Bucket("水", catalog.SystemJLPT, stats.ModeReadingOn).Mastery = 100

	// Creating the record populated every mode's bucket at zero, so sibling
	// modes report 0, not 100.
	got := AverageMastery(items("水"), st, catalog.SystemJLPT, stats.ModeReadingKun)
	if got != 0 {
		t.Errorf("AverageMastery = %v, want 0 for sibling mode", got)
	}
}
