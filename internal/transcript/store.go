package transcript

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/beauty-advisor/internal/db"
)

// ErrUnknownSession is returned when appending to a session that was never created.
var ErrUnknownSession = errors.New("unknown transcript session")

// Store manages persistence of chat sessions and their messages.
type Store struct {
	db *db.DB
}

// NewStore creates a new transcript store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// CreateSession creates a new chat session. An empty id gets a fresh uuid.
// Creating a session that already exists returns the stored one.
func (s *Store) CreateSession(ctx context.Context, id, visitorID string) (*Session, error) {
	if id == "" {
		id = uuid.New().String()
	}
	if visitorID == "" {
		visitorID = "anonymous"
	}
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, visitor_id, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		id, visitorID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return s.GetSession(ctx, id)
}

// GetSession returns the session with id, or nil when none exists.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx,
		`SELECT id, visitor_id, created_at, updated_at FROM chat_sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.VisitorID, &sess.CreatedAt, &sess.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return &sess, nil
}

// AddMessage appends a message to a session. Seq is assigned by the store
// and increases by one per message within a session.
func (s *Store) AddMessage(ctx context.Context, msg Message) (*Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Kind == "" {
		msg.Kind = KindChat
	}
	msg.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_sessions WHERE id = ?`, msg.SessionID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking session: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, msg.SessionID)
	}

	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_messages WHERE session_id = ?`, msg.SessionID,
	).Scan(&msg.Seq)
	if err != nil {
		return nil, fmt.Errorf("allocating sequence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chat_messages (id, session_id, seq, role, kind, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, msg.Seq, msg.Role, msg.Kind, msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("adding message: %w", err)
	}

	// Update session timestamp.
	if _, err := tx.ExecContext(ctx, `UPDATE chat_sessions SET updated_at = ? WHERE id = ?`, msg.CreatedAt, msg.SessionID); err != nil {
		return nil, fmt.Errorf("touching session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing message: %w", err)
	}
	return &msg, nil
}

// GetMessages returns all messages for a session in append order.
func (s *Store) GetMessages(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, seq, role, kind, content, created_at
		 FROM chat_messages WHERE session_id = ? ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Seq, &m.Role, &m.Kind, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ListSessions returns the most recently active sessions first.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, visitor_id, created_at, updated_at FROM chat_sessions
		 ORDER BY updated_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.VisitorID, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// CountSessions returns the total number of chat sessions.
func (s *Store) CountSessions(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_sessions`).Scan(&count)
	return count, err
}
