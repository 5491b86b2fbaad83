package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// TokenKey is the fixed name the bearer token is stored under
const TokenKey = "token"

// TokenStore persists the bearer token
type TokenStore struct {
	db *sql.DB
}

func NewTokenStore(s *Store) *TokenStore {
	return &TokenStore{db: s.DB}
}

// Load returns the persisted token, or "" if none is stored
func (t *TokenStore) Load(ctx context.Context) (string, error) {
	var value string
	err := t.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE name=?`, TokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// Save replaces the persisted token
func (t *TokenStore) Save(ctx context.Context, token string) error {
	query := `INSERT INTO credentials (name, value, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT(name) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`
	_, err := t.db.ExecContext(ctx, query, TokenKey, token, time.Now().UTC())
	return err
}

// Clear removes the persisted token. Clearing an empty store is not an error.
func (t *TokenStore) Clear(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM credentials WHERE name=?`, TokenKey)
	return err
}
