package service

import (
	"context"
	"fmt"
	"strings"

	"taskmanager/internal/logger"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

// UserService handles profile reads, whitelisted updates, account deletion
// (with its task cascade) and the avatar blob.
type UserService struct {
	users  repository.Users
	tasks  repository.Tasks
	mailer Mailer
	log    *logger.Logger
}

func NewUserService(users repository.Users, tasks repository.Tasks, mail Mailer, log *logger.Logger) *UserService {
	return &UserService{users: users, tasks: tasks, mailer: mail, log: log}
}

var _ Users = (*UserService)(nil)

func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// Update applies a whitelist-checked partial update. Unknown fields abort
// the whole operation; nothing is applied partially.
func (s *UserService) Update(ctx context.Context, id int, rawBody []byte) (*models.User, error) {
	upd, err := parseUserUpdate(rawBody)
	if err != nil {
		return nil, err
	}

	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		u.Name = name
	}
	if upd.Email != nil {
		email, err := normalizeEmail(*upd.Email)
		if err != nil {
			return nil, err
		}
		if email != u.Email {
			other, err := s.users.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, ErrEmailTaken
			}
		}
		u.Email = email
	}
	if upd.Password != nil {
		hash, err := hashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if upd.Age != nil {
		if *upd.Age < 0 {
			return nil, fmt.Errorf("%w: age must not be negative", ErrValidation)
		}
		u.Age = *upd.Age
	}

	if err := s.users.Update(ctx, u); err != nil {
		if isDuplicateEmail(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Delete removes the account: the user's tasks go first, then the user row
// (session tokens cascade with it). The two store writes are sequential
// and untransacted; a crash in between can only orphan nothing that
// references a missing user. A farewell email goes out best-effort.
func (s *UserService) Delete(ctx context.Context, id int) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	removed, err := s.tasks.DeleteByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}
	if s.log != nil {
		s.log.Infow("account_deleted", "user_id", id, "tasks_removed", removed)
	}

	if s.mailer != nil {
		email, name := u.Email, u.Name
		go func() {
			if err := s.mailer.SendFarewell(email, name); err != nil && s.log != nil {
				s.log.Errorw("farewell_email_failed", "err", err, "email", email)
			}
		}()
	}
	return u, nil
}

// SetAvatar transcodes the upload to the canonical 250x250 PNG and stores it.
func (s *UserService) SetAvatar(ctx context.Context, id int, data []byte) error {
	png, err := normalizeAvatar(data)
	if err != nil {
		return err
	}
	return s.users.SetAvatar(ctx, id, png)
}

func (s *UserService) GetAvatar(ctx context.Context, id int) ([]byte, error) {
	blob, err := s.users.GetAvatar(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		return nil, ErrNotFound
	}
	return blob, nil
}

func (s *UserService) DeleteAvatar(ctx context.Context, id int) error {
	return s.users.DeleteAvatar(ctx, id)
}
