package session

import (
	"github.com/abhisek/kanjidrill/internal/catalog"
	"github.com/abhisek/kanjidrill/internal/stats"
)

// SessionEvent records a session lifecycle action ("start" or "complete").
type SessionEvent struct {
	SessionUID      string
	Action          string
	System          catalog.System
	Mode            stats.ModeKey
	SessionID       int
	CooldownTier    int
	Prioritized     bool
	QuestionsServed int
	CorrectAnswers  int
}

// AnswerEvent records a single answered question.
type AnswerEvent struct {
	SessionUID      string
	ItemKey         string
	System          catalog.System
	Mode            stats.ModeKey
	Correct         bool
	Prioritized     bool
	QuestionCounter int
	Position        int
}
