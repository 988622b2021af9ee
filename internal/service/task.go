package service

import (
	"context"
	"fmt"
	"strings"

	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

// TaskService applies the ownership rules on top of the task store.
type TaskService struct {
	tasks repository.Tasks
}

func NewTaskService(tasks repository.Tasks) *TaskService {
	return &TaskService{tasks: tasks}
}

var _ Tasks = (*TaskService)(nil)

// TaskFilter is the raw listing input from query params. SortBy uses the
// "field:direction" form, e.g. "created_at:desc".
type TaskFilter struct {
	Completed *bool
	Limit     int
	Skip      int
	SortBy    string
}

// taskSortFields maps accepted sort names (including the camelCase forms
// older clients send) to store columns.
var taskSortFields = map[string]string{
	"created_at":  "created_at",
	"createdAt":   "created_at",
	"updated_at":  "updated_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

func (s *TaskService) Create(ctx context.Context, ownerID int, description string) (*models.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", ErrValidation)
	}
	t := &models.Task{OwnerID: ownerID, Description: description}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, ownerID int, f TaskFilter) ([]models.Task, error) {
	q, err := buildTaskQuery(f)
	if err != nil {
		return nil, err
	}
	return s.tasks.ListByOwner(ctx, ownerID, q)
}

// Get fetches a task for its owner. A task owned by someone else is
// reported as not found, never as forbidden.
func (s *TaskService) Get(ctx context.Context, ownerID int, taskID string) (*models.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return t, nil
}

// Update applies a whitelist-checked partial update to an owned task.
func (s *TaskService) Update(ctx context.Context, ownerID int, taskID string, rawBody []byte) (*models.Task, error) {
	upd, err := parseTaskUpdate(rawBody)
	if err != nil {
		return nil, err
	}

	t, err := s.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if upd.Description != nil {
		description := strings.TrimSpace(*upd.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: description must not be empty", ErrValidation)
		}
		t.Description = description
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID int, taskID string) (*models.Task, error) {
	t, err := s.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Delete(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func buildTaskQuery(f TaskFilter) (repository.TaskQuery, error) {
	if f.Limit < 0 || f.Skip < 0 {
		return repository.TaskQuery{}, fmt.Errorf("%w: limit and skip must not be negative", ErrValidation)
	}
	q := repository.TaskQuery{Completed: f.Completed, Limit: f.Limit, Skip: f.Skip}

	if f.SortBy == "" {
		return q, nil
	}
	field, dir, _ := strings.Cut(f.SortBy, ":")
	column, ok := taskSortFields[field]
	if !ok {
		return repository.TaskQuery{}, fmt.Errorf("%w: cannot sort by %q", ErrValidation, field)
	}
	switch dir {
	case "", "asc":
	case "desc":
		q.Desc = true
	default:
		return repository.TaskQuery{}, fmt.Errorf("%w: sort direction must be asc or desc", ErrValidation)
	}
	q.SortBy = column
	return q, nil
}
