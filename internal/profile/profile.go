// Package profile holds the learner profile: identity, XP, and the global
// counters that drive weakness prioritization.
package profile

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/kanjidrill/internal/catalog"
)

// DefaultUsername is used until the learner picks a name.
const DefaultUsername = "User"

// Profile is the persisted profile document. The two pw_* counters only ever
// increment and are advanced by the session coordinator while weakness
// prioritization is enabled.
type Profile struct {
	Username    string                                  `json:"username"`
	PicturePath string                                  `json:"pfp_path,omitempty"`
	XP          map[catalog.System]map[catalog.Category]int `json:"xp"`
	QuestionCounter int                                 `json:"pw_question_counter"`
	SessionCounter  int                                 `json:"pw_session_counter"`
}

// New returns a profile with defaults.
func New() *Profile {
	p := &Profile{}
	p.Normalize()
	return p
}

// Decode builds a profile from a persisted document and normalizes it.
func Decode(doc []byte) (*Profile, error) {
	p := &Profile{}
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, p); err != nil {
			return nil, fmt.Errorf("decode profile document: %w", err)
		}
	}
	p.Normalize()
	return p, nil
}

// Encode serializes the profile as the profile document.
func (p *Profile) Encode() ([]byte, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile document: %w", err)
	}
	return doc, nil
}

// Normalize fills in missing fields with defaults without touching existing
// values, so older documents upgrade cleanly.
func (p *Profile) Normalize() {
	if p.Username == "" {
		p.Username = DefaultUsername
	}
	if p.XP == nil {
		p.XP = make(map[catalog.System]map[catalog.Category]int)
	}
	for _, sys := range []catalog.System{catalog.SystemJLPT, catalog.SystemWaniKani} {
		if p.XP[sys] == nil {
			p.XP[sys] = make(map[catalog.Category]int)
		}
		for _, cat := range []catalog.Category{catalog.CategoryMeaning, catalog.CategoryReading} {
			if _, ok := p.XP[sys][cat]; !ok {
				p.XP[sys][cat] = 0
			}
		}
	}
	if p.QuestionCounter < 0 {
		p.QuestionCounter = 0
	}
	if p.SessionCounter < 0 {
		p.SessionCounter = 0
	}
}

// NextQuestion increments the global question counter and returns it.
func (p *Profile) NextQuestion() int {
	p.QuestionCounter++
	return p.QuestionCounter
}

// NextSession increments the global session counter and returns it.
func (p *Profile) NextSession() int {
	p.SessionCounter++
	return p.SessionCounter
}

// ApplyAnswer adds the XP earned by one answer and returns the amount.
func (p *Profile) ApplyAnswer(sys catalog.System, cat catalog.Category, correct bool) int {
	gained := XPForAnswer(cat, correct)
	p.Normalize()
	p.XP[sys][cat] += gained
	return gained
}
