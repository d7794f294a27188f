// Package catalog loads the kanji dataset and filters it into drillable pools.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// System identifies a classification system. Stats under each system are
// tracked independently.
type System string

const (
	SystemJLPT     System = "JLPT"
	SystemWaniKani System = "WaniKani"
)

// Category is the quiz category a drill runs under.
type Category string

const (
	CategoryMeaning Category = "Meaning"
	CategoryReading Category = "Reading"
)

// Kanji is a single catalog entry. The character itself is the stable
// identity key across the whole dataset.
type Kanji struct {
	Character     string   `json:"-"`
	JLPTLevel     int      `json:"jlpt_new"`
	Meanings      []string `json:"meanings"`
	ReadingsOn    []string `json:"readings_on"`
	ReadingsKun   []string `json:"readings_kun"`
	WKLevel       int      `json:"wk_level"`
	WKMeanings    []string `json:"wk_meanings"`
	WKReadingsOn  []string `json:"wk_readings_on"`
	WKReadingsKun []string `json:"wk_readings_kun"`
}

// Key returns the item's identity key.
func (k Kanji) Key() string { return k.Character }

// MeaningsFor returns the meanings under the given system.
func (k Kanji) MeaningsFor(sys System) []string {
	if sys == SystemWaniKani {
		return k.WKMeanings
	}
	return k.Meanings
}

// OnReadingsFor returns the on'yomi readings under the given system.
func (k Kanji) OnReadingsFor(sys System) []string {
	if sys == SystemWaniKani {
		return k.WKReadingsOn
	}
	return k.ReadingsOn
}

// KunReadingsFor returns the kun'yomi readings under the given system.
func (k Kanji) KunReadingsFor(sys System) []string {
	if sys == SystemWaniKani {
		return k.WKReadingsKun
	}
	return k.ReadingsKun
}

// Catalog holds the full kanji dataset in a deterministic order.
type Catalog struct {
	kanji []Kanji
}

// New builds a catalog from the given entries, sorted by character.
func New(items []Kanji) *Catalog {
	sorted := make([]Kanji, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Character < sorted[j].Character
	})
	return &Catalog{kanji: sorted}
}

// Load reads the kanji dataset from path. A missing file yields an empty
// catalog rather than an error; the caller decides whether that is usable.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(nil), nil
		}
		return nil, fmt.Errorf("read kanji dataset: %w", err)
	}

	var byChar map[string]Kanji
	if err := json.Unmarshal(raw, &byChar); err != nil {
		return nil, fmt.Errorf("decode kanji dataset: %w", err)
	}

	items := make([]Kanji, 0, len(byChar))
	for char, k := range byChar {
		k.Character = char
		items = append(items, k)
	}
	return New(items), nil
}

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int { return len(c.kanji) }

// All returns every entry in the catalog.
func (c *Catalog) All() []Kanji {
	out := make([]Kanji, len(c.kanji))
	copy(out, c.kanji)
	return out
}

// ParseSystem maps a user-supplied name to a System.
func ParseSystem(s string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jlpt":
		return SystemJLPT, nil
	case "wanikani", "wk":
		return SystemWaniKani, nil
	}
	return "", fmt.Errorf("unknown classification system %q", s)
}
