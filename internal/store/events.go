package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/kanjidrill/internal/session"
)

// AppendSessionEvent records a session lifecycle event.
func (s *Store) AppendSessionEvent(ev session.SessionEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO session_events
		 (id, session_uid, action, system, mode, session_id, cooldown_tier, prioritized, questions_served, correct_answers, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		ev.SessionUID,
		ev.Action,
		string(ev.System),
		string(ev.Mode),
		ev.SessionID,
		ev.CooldownTier,
		boolToInt(ev.Prioritized),
		ev.QuestionsServed,
		ev.CorrectAnswers,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// AppendAnswerEvent records a single answered question.
func (s *Store) AppendAnswerEvent(ev session.AnswerEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO answer_events
		 (id, session_uid, item_key, system, mode, correct, prioritized, question_counter, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		ev.SessionUID,
		ev.ItemKey,
		string(ev.System),
		string(ev.Mode),
		boolToInt(ev.Correct),
		boolToInt(ev.Prioritized),
		ev.QuestionCounter,
		ev.Position,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

// ItemAccuracy returns the historical accuracy for an item across all logged
// answers, and the answer count. Zero answers yields (0, 0).
func (s *Store) ItemAccuracy(itemKey string) (float64, int, error) {
	var total, correct int
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(correct), 0) FROM answer_events WHERE item_key = ?`,
		itemKey,
	).Scan(&total, &correct)
	if err != nil {
		return 0, 0, fmt.Errorf("query item accuracy: %w", err)
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(correct) / float64(total), total, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
