package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/kanjidrill/internal/profile"
	"github.com/abhisek/kanjidrill/internal/stats"
)

const (
	statsDocument   = "stats"
	profileDocument = "profile"
)

func (s *Store) getDocument(name string) ([]byte, bool, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM documents WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read document %q: %w", name, err)
	}
	return []byte(data), true, nil
}

func (s *Store) setDocument(name string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO documents (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write document %q: %w", name, err)
	}
	return nil
}

// LoadStats reads the stats document into a stat store. A missing, invalid,
// or unreadable document degrades to an empty store with a warning; it is
// never fatal.
func (s *Store) LoadStats() *stats.Store {
	doc, ok, err := s.getDocument(statsDocument)
	if err != nil {
		warnf("load stats: %v", err)
		return stats.NewStore()
	}
	if !ok {
		return stats.NewStore()
	}

	if err := validateDocument(statsDocument, statsSchema, doc); err != nil {
		warnf("stats document failed validation, starting fresh: %v", err)
		return stats.NewStore()
	}

	st, err := stats.Decode(doc)
	if err != nil {
		warnf("stats document unreadable, starting fresh: %v", err)
		return stats.NewStore()
	}
	return st
}

// SaveStats writes the stats document.
func (s *Store) SaveStats(st *stats.Store) error {
	doc, err := st.Encode()
	if err != nil {
		return err
	}
	return s.setDocument(statsDocument, doc)
}

// ResetStats clears all stat records.
func (s *Store) ResetStats() error {
	return s.setDocument(statsDocument, []byte("{}"))
}

// LoadProfile reads the profile document. Like LoadStats, any failure
// degrades to a default profile.
func (s *Store) LoadProfile() *profile.Profile {
	doc, ok, err := s.getDocument(profileDocument)
	if err != nil {
		warnf("load profile: %v", err)
		return profile.New()
	}
	if !ok {
		return profile.New()
	}

	if err := validateDocument(profileDocument, profileSchema, doc); err != nil {
		warnf("profile document failed validation, starting fresh: %v", err)
		return profile.New()
	}

	p, err := profile.Decode(doc)
	if err != nil {
		warnf("profile document unreadable, starting fresh: %v", err)
		return profile.New()
	}
	return p
}

// SaveProfile writes the profile document.
func (s *Store) SaveProfile(p *profile.Profile) error {
	doc, err := p.Encode()
	if err != nil {
		return err
	}
	return s.setDocument(profileDocument, doc)
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
