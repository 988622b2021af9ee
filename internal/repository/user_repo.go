package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskmanager/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

// ErrDuplicateEmail reports a violation of the users.email unique constraint.
var ErrDuplicateEmail = errors.New("email already registered")

const (
	insertUserSQL = `INSERT INTO users (name, email, password_hash, age, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`

	selectUserByIDSQL    = `SELECT id, name, email, password_hash, age, created_at, updated_at FROM users WHERE id = ?`
	selectUserByEmailSQL = `SELECT id, name, email, password_hash, age, created_at, updated_at FROM users WHERE email = ?`

	updateUserSQL = `UPDATE users SET name = ?, email = ?, password_hash = ?, age = ?, updated_at = ? WHERE id = ?`
	deleteUserSQL = `DELETE FROM users WHERE id = ?`

	setAvatarSQL    = `UPDATE users SET avatar = ?, updated_at = ? WHERE id = ?`
	selectAvatarSQL = `SELECT avatar FROM users WHERE id = ?`
	clearAvatarSQL  = `UPDATE users SET avatar = NULL, updated_at = ? WHERE id = ?`
)

// isUniqueViolation matches by message: modernc.org/sqlite exposes no
// typed error for constraint failures.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user and returns its ID, filling the timestamps on u.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (int, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Name, u.Email, u.PasswordHash, u.Age, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Email, err)
	}
	u.ID = int(lastID)
	u.CreatedAt = now
	u.UpdatedAt = now
	return u.ID, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return u, nil
}

// Update persists the mutable user columns.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, updateUserSQL, u.Name, u.Email, u.PasswordHash, u.Age, now, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	u.UpdatedAt = now
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteUserSQL, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (r *UserRepository) SetAvatar(ctx context.Context, id int, png []byte) error {
	if _, err := r.db.ExecContext(ctx, setAvatarSQL, png, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("set avatar for user %d: %w", id, err)
	}
	return nil
}

// GetAvatar returns the stored blob, or nil if the user has no avatar
// (or does not exist).
func (r *UserRepository) GetAvatar(ctx context.Context, id int) ([]byte, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx, selectAvatarSQL, id).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select avatar for user %d: %w", id, err)
	}
	return blob, nil
}

func (r *UserRepository) DeleteAvatar(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, clearAvatarSQL, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("clear avatar for user %d: %w", id, err)
	}
	return nil
}
