package service

import (
	"context"
	"sort"

	"taskmanager/internal/models"
	"taskmanager/internal/repository"

	"github.com/google/uuid"
)

// In-memory fakes for the repository interfaces, shared by the service tests.

type fakeUsers struct {
	users   map[int]*models.User
	avatars map[int][]byte
	nextID  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[int]*models.User{}, avatars: map[int][]byte{}}
}

var _ repository.Users = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *models.User) (int, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return 0, repository.ErrDuplicateEmail
		}
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.ID] = &cp
	return u.ID, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Update(_ context.Context, u *models.User) error {
	for _, existing := range f.users {
		if existing.ID != u.ID && existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id int) error {
	delete(f.users, id)
	delete(f.avatars, id)
	return nil
}

func (f *fakeUsers) SetAvatar(_ context.Context, id int, png []byte) error {
	f.avatars[id] = png
	return nil
}

func (f *fakeUsers) GetAvatar(_ context.Context, id int) ([]byte, error) {
	return f.avatars[id], nil
}

func (f *fakeUsers) DeleteAvatar(_ context.Context, id int) error {
	delete(f.avatars, id)
	return nil
}

type fakeTokens struct {
	byUser map[int][]string
}

func newFakeTokens() *fakeTokens { return &fakeTokens{byUser: map[int][]string{}} }

var _ repository.Tokens = (*fakeTokens)(nil)

func (f *fakeTokens) Add(_ context.Context, userID int, token string) error {
	f.byUser[userID] = append(f.byUser[userID], token)
	return nil
}

func (f *fakeTokens) Exists(_ context.Context, userID int, token string) (bool, error) {
	for _, t := range f.byUser[userID] {
		if t == token {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTokens) Remove(_ context.Context, userID int, token string) error {
	kept := f.byUser[userID][:0]
	for _, t := range f.byUser[userID] {
		if t != token {
			kept = append(kept, t)
		}
	}
	f.byUser[userID] = kept
	return nil
}

func (f *fakeTokens) RemoveAll(_ context.Context, userID int) error {
	delete(f.byUser, userID)
	return nil
}

type fakeTasks struct {
	tasks map[string]*models.Task
}

func newFakeTasks() *fakeTasks { return &fakeTasks{tasks: map[string]*models.Task{}} }

var _ repository.Tasks = (*fakeTasks)(nil)

func (f *fakeTasks) Create(_ context.Context, t *models.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTasks) GetByID(_ context.Context, id string) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTasks) ListByOwner(_ context.Context, ownerID int, q repository.TaskQuery) ([]models.Task, error) {
	out := []models.Task{}
	for _, t := range f.tasks {
		if t.OwnerID != ownerID {
			continue
		}
		if q.Completed != nil && t.Completed != *q.Completed {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTasks) Update(_ context.Context, t *models.Task) error {
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id string) error {
	delete(f.tasks, id)
	return nil
}

func (f *fakeTasks) DeleteByOwner(_ context.Context, ownerID int) (int64, error) {
	var n int64
	for id, t := range f.tasks {
		if t.OwnerID == ownerID {
			delete(f.tasks, id)
			n++
		}
	}
	return n, nil
}

// recordingMailer captures sends; the channels let tests wait for the
// fire-and-forget goroutines.
type recordingMailer struct {
	welcomes  chan string
	farewells chan string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{welcomes: make(chan string, 8), farewells: make(chan string, 8)}
}

func (m *recordingMailer) SendWelcome(email, _ string) error {
	m.welcomes <- email
	return nil
}

func (m *recordingMailer) SendFarewell(email, _ string) error {
	m.farewells <- email
	return nil
}
