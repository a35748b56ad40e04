// Package prefs is the durable key-value store backing per-visitor state
// such as the product selection.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ziadkadry99/beauty-advisor/internal/db"
)

// Store persists values by (namespace, key).
type Store struct {
	db *db.DB
}

// NewStore creates a new prefs store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Get returns the value under key. The bool is false when no value exists.
func (s *Store) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("getting %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

// Set replaces the value under key.
func (s *Store) Set(ctx context.Context, namespace, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_entries (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		namespace, key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("setting %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Remove deletes the value under key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, namespace, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kv_entries WHERE namespace = ? AND key = ?`,
		namespace, key,
	)
	if err != nil {
		return fmt.Errorf("removing %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Scoped returns a view of the store bound to one namespace. It satisfies
// selection.Mirror.
func (s *Store) Scoped(namespace string) *Scope {
	return &Scope{store: s, namespace: namespace, timeout: 5 * time.Second}
}

// Scope is a Store bound to a namespace. Calls are synchronous and bounded
// by a short timeout.
type Scope struct {
	store     *Store
	namespace string
	timeout   time.Duration
}

func (sc *Scope) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), sc.timeout)
}

func (sc *Scope) Get(key string) ([]byte, bool, error) {
	ctx, cancel := sc.ctx()
	defer cancel()
	return sc.store.Get(ctx, sc.namespace, key)
}

func (sc *Scope) Set(key string, value []byte) error {
	ctx, cancel := sc.ctx()
	defer cancel()
	return sc.store.Set(ctx, sc.namespace, key, value)
}

func (sc *Scope) Remove(key string) error {
	ctx, cancel := sc.ctx()
	defer cancel()
	return sc.store.Remove(ctx, sc.namespace, key)
}
