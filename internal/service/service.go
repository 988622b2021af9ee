package service

import (
	"context"
	"errors"
	"time"

	"taskmanager/internal/logger"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

// Domain errors shared across services. Handlers map these onto HTTP
// status codes with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmailTaken         = errors.New("email already in use")
	ErrNotFound           = errors.New("not found")
)

// Authorization issues, validates and revokes session tokens and owns the
// signup/login flows.
type Authorization interface {
	SignUp(ctx context.Context, in SignUpInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
	Logout(ctx context.Context, userID int, token string) error
	LogoutAll(ctx context.Context, userID int) error
}

// Users is profile self-service: read, whitelisted update, account
// deletion with task cascade, and the avatar blob.
type Users interface {
	Get(ctx context.Context, id int) (*models.User, error)
	Update(ctx context.Context, id int, rawBody []byte) (*models.User, error)
	Delete(ctx context.Context, id int) (*models.User, error)
	SetAvatar(ctx context.Context, id int, data []byte) error
	GetAvatar(ctx context.Context, id int) ([]byte, error)
	DeleteAvatar(ctx context.Context, id int) error
}

// Tasks is owner-scoped task CRUD. Every operation takes the caller id;
// a task owned by someone else is indistinguishable from a missing one.
type Tasks interface {
	Create(ctx context.Context, ownerID int, description string) (*models.Task, error)
	List(ctx context.Context, ownerID int, f TaskFilter) ([]models.Task, error)
	Get(ctx context.Context, ownerID int, taskID string) (*models.Task, error)
	Update(ctx context.Context, ownerID int, taskID string, rawBody []byte) (*models.Task, error)
	Delete(ctx context.Context, ownerID int, taskID string) (*models.Task, error)
}

// Mailer is the outbound email collaborator. Sends are fire-and-forget:
// a failure is logged and never fails the primary operation.
type Mailer interface {
	SendWelcome(email, name string) error
	SendFarewell(email, name string) error
}

// Config carries the auth knobs read from configuration in main.
type Config struct {
	SigningKey string
	TokenTTL   time.Duration
}

type Service struct {
	Authorization
	Users
	Tasks
}

func NewService(repos *repository.Repository, mail Mailer, cfg Config, log *logger.Logger) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Tokens, mail, cfg, log),
		Users:         NewUserService(repos.Users, repos.Tasks, mail, log),
		Tasks:         NewTaskService(repos.Tasks),
	}
}
