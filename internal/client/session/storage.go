package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// tokenKey is the single key under which the bearer token is persisted.
// Absence of the row means "no session".
const tokenKey = "token"

// TokenStorage is the durable side of the session store. It survives
// process restarts and is the only shared mutable resource visible to
// other FinMate processes on the same machine.
type TokenStorage interface {
	// Load returns the persisted token, or "" when none is stored.
	Load(ctx context.Context) (string, error)
	// Store persists the token, replacing any previous value.
	Store(ctx context.Context, token string) error
	// Delete removes the persisted token. Deleting an absent token is
	// not an error.
	Delete(ctx context.Context) error
}

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

func (r *SQLiteStorage) Load(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, tokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session[%s]: %w", tokenKey, err)
	}
	return value, nil
}

func (r *SQLiteStorage) Store(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, tokenKey, token)
	if err != nil {
		return fmt.Errorf("failed to store session[%s]: %w", tokenKey, err)
	}
	return nil
}

func (r *SQLiteStorage) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, tokenKey)
	if err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", tokenKey, err)
	}
	return nil
}
