// Package session persists chat sessions and their conversation turns.
// The answer pipeline only ever reads the most recent turns; full
// history stays in SQLite for the web layer.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/future-self-ai/backend/internal/db"
	"github.com/future-self-ai/backend/internal/llm"
	"github.com/future-self-ai/backend/internal/persona"
)

// ErrNotFound is returned when a session id does not exist.
var ErrNotFound = errors.New("session not found")

// Session is one conversation with a future self.
type Session struct {
	ID        string          `json:"id"`
	CareerID  string          `json:"career_id"`
	Persona   persona.Persona `json:"persona"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store provides session persistence on the shared database.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create starts a session for the given career and persona.
func (s *Store) Create(ctx context.Context, careerID string, p persona.Persona) (*Session, error) {
	personaJSON, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshalling persona: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chat_sessions (id, career_id, persona) VALUES (?, ?, ?)`,
		id, careerID, string(personaJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return s.Get(ctx, id)
}

// Get loads a session by id.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, career_id, persona, created_at, updated_at
		FROM chat_sessions WHERE id = ?`, id)

	var sess Session
	var personaJSON string
	err := row.Scan(&sess.ID, &sess.CareerID, &personaJSON, &sess.CreatedAt, &sess.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	if err := json.Unmarshal([]byte(personaJSON), &sess.Persona); err != nil {
		return nil, fmt.Errorf("unmarshalling persona: %w", err)
	}
	return &sess, nil
}

// SetPersona replaces the session's persona (e.g. after résumé analysis).
func (s *Store) SetPersona(ctx context.Context, id string, p persona.Persona) error {
	personaJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshalling persona: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE chat_sessions SET persona = ?, updated_at = datetime('now') WHERE id = ?`,
		string(personaJSON), id,
	)
	if err != nil {
		return fmt.Errorf("updating persona: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddTurn appends one conversation turn and bumps the session's
// updated_at.
func (s *Store) AddTurn(ctx context.Context, sessionID string, role llm.Role, content string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, session_id, role, content) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), sessionID, string(role), content,
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE chat_sessions SET updated_at = datetime('now') WHERE id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("touching session: %w", err)
	}
	return nil
}

// LastTurns returns the most recent n turns in chronological order.
func (s *Store) LastTurns(ctx context.Context, sessionID string, n int) ([]llm.Message, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content FROM chat_messages
		WHERE session_id = ?
		ORDER BY rowid DESC LIMIT ?`, sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var reversed []llm.Message
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		reversed = append(reversed, llm.Message{Role: llm.Role(role), Content: content})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}

	turns := make([]llm.Message, len(reversed))
	for i, m := range reversed {
		turns[len(turns)-1-i] = m
	}
	return turns, nil
}

// TurnCount reports how many turns a session holds.
func (s *Store) TurnCount(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM chat_messages WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting messages: %w", err)
	}
	return n, nil
}

// SaveResumeProfile stores the skills and experience extracted from a
// session's résumé, replacing any previous profile.
func (s *Store) SaveResumeProfile(ctx context.Context, sessionID string, skills []string, years int) error {
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("marshalling skills: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO resume_profiles (session_id, skills, years_experience) VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			skills = excluded.skills,
			years_experience = excluded.years_experience`,
		sessionID, string(skillsJSON), years,
	)
	if err != nil {
		return fmt.Errorf("saving resume profile: %w", err)
	}
	return nil
}

// ResumeProfile loads the stored résumé skills and experience for a
// session. ErrNotFound means no résumé was analyzed for it.
func (s *Store) ResumeProfile(ctx context.Context, sessionID string) ([]string, int, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT skills, years_experience FROM resume_profiles WHERE session_id = ?`, sessionID)

	var skillsJSON string
	var years int
	err := row.Scan(&skillsJSON, &years)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("scanning resume profile: %w", err)
	}
	var skills []string
	if err := json.Unmarshal([]byte(skillsJSON), &skills); err != nil {
		return nil, 0, fmt.Errorf("unmarshalling skills: %w", err)
	}
	return skills, years, nil
}

// DeleteIdle removes sessions (and their messages, via cascade) whose
// last activity is older than maxAge. Returns how many sessions were
// removed.
func (s *Store) DeleteIdle(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge).Format("2006-01-02 15:04:05")
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM chat_sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting idle sessions: %w", err)
	}
	return res.RowsAffected()
}
