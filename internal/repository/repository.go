package repository

import (
	"context"
	"database/sql"

	"taskmanager/internal/models"
	"taskmanager/internal/repository/db"
)

type Users interface {
	Create(ctx context.Context, u *models.User) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id int) error
	SetAvatar(ctx context.Context, id int, png []byte) error
	GetAvatar(ctx context.Context, id int) ([]byte, error)
	DeleteAvatar(ctx context.Context, id int) error
}

type Tokens interface {
	Add(ctx context.Context, userID int, token string) error
	Exists(ctx context.Context, userID int, token string) (bool, error)
	Remove(ctx context.Context, userID int, token string) error
	RemoveAll(ctx context.Context, userID int) error
}

// TaskQuery narrows and orders an owner's task listing. SortBy must be a
// column from taskSortColumns; a zero Limit means unbounded.
type TaskQuery struct {
	Completed *bool
	Limit     int
	Skip      int
	SortBy    string
	Desc      bool
}

type Tasks interface {
	Create(ctx context.Context, t *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID int, q TaskQuery) ([]models.Task, error)
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID int) (int64, error)
}

type Repository struct {
	Users  Users
	Tokens Tokens
	Tasks  Tasks
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		Users:  NewUserRepository(database),
		Tokens: NewTokenRepository(database),
		Tasks:  NewTaskRepository(database),
	}
}

// InitDB opens/creates the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
