package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taskmanager/internal/models"

	"github.com/google/uuid"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository { return &TaskRepository{db: db} }

var _ Tasks = (*TaskRepository)(nil)

// ErrBadSortColumn reports a TaskQuery.SortBy outside the allowed set.
var ErrBadSortColumn = errors.New("unsupported sort column")

// taskSortColumns is the allow-list for ORDER BY; never interpolate user
// input into SQL outside of it.
var taskSortColumns = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"description": true,
	"completed":   true,
}

const (
	insertTaskSQL = `INSERT INTO tasks (id, owner_id, description, completed, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`

	selectTaskByIDSQL = `SELECT id, owner_id, description, completed, created_at, updated_at FROM tasks WHERE id = ?`

	updateTaskSQL = `UPDATE tasks SET description = ?, completed = ?, updated_at = ? WHERE id = ?`

	deleteTaskSQL         = `DELETE FROM tasks WHERE id = ?`
	deleteTasksByOwnerSQL = `DELETE FROM tasks WHERE owner_id = ?`
)

// Create inserts a new task. If ID is empty, a uuid is assigned.
func (r *TaskRepository) Create(ctx context.Context, t *models.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := r.db.ExecContext(ctx, insertTaskSQL,
		t.ID, t.OwnerID, t.Description, t.Completed, t.CreatedAt, t.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert task %s: %w", t.ID, err)
	}
	return nil
}

// GetByID fetches a task by id. Returns (nil, nil) if not found.
// Ownership is checked by the service layer, not here.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	err := r.db.QueryRowContext(ctx, selectTaskByIDSQL, id).Scan(
		&t.ID, &t.OwnerID, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select task %s: %w", id, err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

// ListByOwner returns the owner's tasks, optionally filtered by completion
// and ordered/paged per q.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int, q TaskQuery) ([]models.Task, error) {
	query := `SELECT id, owner_id, description, completed, created_at, updated_at FROM tasks WHERE owner_id = ?`
	args := []any{ownerID}

	if q.Completed != nil {
		query += " AND completed = ?"
		args = append(args, *q.Completed)
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	if !taskSortColumns[sortBy] {
		return nil, fmt.Errorf("%w: %q", ErrBadSortColumn, q.SortBy)
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	query += " ORDER BY " + sortBy + " " + dir

	if q.Limit > 0 || q.Skip > 0 {
		limit := q.Limit
		if limit <= 0 {
			limit = -1 // SQLite: no limit
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, q.Skip)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Task, 0, 16)
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.CreatedAt = t.CreatedAt.UTC()
		t.UpdatedAt = t.UpdatedAt.UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *models.Task) error {
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, updateTaskSQL, t.Description, t.Completed, now, t.ID); err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	t.UpdatedAt = now
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteTaskSQL, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

// DeleteByOwner removes every task owned by the user and reports how many
// rows went away. Used by the account-deletion cascade.
func (r *TaskRepository) DeleteByOwner(ctx context.Context, ownerID int) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteTasksByOwnerSQL, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete tasks for owner %d: %w", ownerID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for owner %d: %w", ownerID, err)
	}
	return n, nil
}
