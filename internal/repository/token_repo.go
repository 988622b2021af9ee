package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// TokenRepository holds the per-user session token lists. A row present
// in the tokens table means the token is still active; revocation deletes
// the row.
type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

var _ Tokens = (*TokenRepository)(nil)

const (
	insertTokenSQL      = `INSERT INTO tokens (user_id, token, created_at) VALUES (?, ?, ?)`
	countTokenSQL       = `SELECT COUNT(1) FROM tokens WHERE user_id = ? AND token = ?`
	deleteTokenSQL      = `DELETE FROM tokens WHERE user_id = ? AND token = ?`
	deleteUserTokensSQL = `DELETE FROM tokens WHERE user_id = ?`
)

func (r *TokenRepository) Add(ctx context.Context, userID int, token string) error {
	if _, err := r.db.ExecContext(ctx, insertTokenSQL, userID, token, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert token for user %d: %w", userID, err)
	}
	return nil
}

// Exists reports whether the exact token string is still active for the user.
func (r *TokenRepository) Exists(ctx context.Context, userID int, token string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countTokenSQL, userID, token).Scan(&n); err != nil {
		return false, fmt.Errorf("count token for user %d: %w", userID, err)
	}
	return n > 0, nil
}

func (r *TokenRepository) Remove(ctx context.Context, userID int, token string) error {
	if _, err := r.db.ExecContext(ctx, deleteTokenSQL, userID, token); err != nil {
		return fmt.Errorf("delete token for user %d: %w", userID, err)
	}
	return nil
}

func (r *TokenRepository) RemoveAll(ctx context.Context, userID int) error {
	if _, err := r.db.ExecContext(ctx, deleteUserTokensSQL, userID); err != nil {
		return fmt.Errorf("delete tokens for user %d: %w", userID, err)
	}
	return nil
}
