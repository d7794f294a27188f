package stats

import (
	"fmt"
	"strings"

	"github.com/abhisek/kanjidrill/internal/catalog"
)

// ModeKey identifies a quiz variant. Performance is tracked independently
// per mode under each classification system.
type ModeKey string

const (
	ModeMeaningChoice  ModeKey = "Meaning:multiple_choice"
	ModeMeaningWriting ModeKey = "Meaning:writing"
	ModeReadingKun     ModeKey = "Reading:kunyomi"
	ModeReadingOn      ModeKey = "Reading:onyomi"
)

// AllModes returns the closed set of mode keys.
func AllModes() []ModeKey {
	return []ModeKey{ModeMeaningChoice, ModeMeaningWriting, ModeReadingKun, ModeReadingOn}
}

// Category returns the quiz category this mode belongs to.
func (m ModeKey) Category() catalog.Category {
	if strings.HasPrefix(string(m), string(catalog.CategoryReading)) {
		return catalog.CategoryReading
	}
	return catalog.CategoryMeaning
}

// SubMode returns the part after the category, e.g. "writing".
func (m ModeKey) SubMode() string {
	if i := strings.IndexByte(string(m), ':'); i >= 0 {
		return string(m)[i+1:]
	}
	return string(m)
}

// ParseMode maps a user-supplied mode name to a ModeKey. The sub-mode alone
// is enough since each one belongs to exactly one category.
func ParseMode(s string) (ModeKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multiple_choice", "choice", "meaning:multiple_choice":
		return ModeMeaningChoice, nil
	case "writing", "meaning:writing":
		return ModeMeaningWriting, nil
	case "kunyomi", "kun", "reading:kunyomi":
		return ModeReadingKun, nil
	case "onyomi", "on", "reading:onyomi":
		return ModeReadingOn, nil
	}
	return "", fmt.Errorf("unknown drill mode %q", s)
}
