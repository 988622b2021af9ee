package handlers

import (
	"context"
	"net/http"

	"taskmanager/internal/models"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser   *models.User
	signUpToken  string
	signUpErr    error
	loginUser    *models.User
	loginToken   string
	loginErr     error
	authUser     *models.User
	authErr      error
	logoutErr    error
	logoutAllErr error

	lastSignUp      service.SignUpInput
	lastLoginEmail  string
	lastAuthToken   string
	lastLogoutToken string
	logoutAllCalls  int
}

func (m *mockAuth) SignUp(_ context.Context, in service.SignUpInput) (*models.User, string, error) {
	m.lastSignUp = in
	return m.signUpUser, m.signUpToken, m.signUpErr
}

func (m *mockAuth) Login(_ context.Context, email, _ string) (*models.User, string, error) {
	m.lastLoginEmail = email
	return m.loginUser, m.loginToken, m.loginErr
}

func (m *mockAuth) Authenticate(_ context.Context, token string) (*models.User, error) {
	m.lastAuthToken = token
	return m.authUser, m.authErr
}

func (m *mockAuth) Logout(_ context.Context, _ int, token string) error {
	m.lastLogoutToken = token
	return m.logoutErr
}

func (m *mockAuth) LogoutAll(_ context.Context, _ int) error {
	m.logoutAllCalls++
	return m.logoutAllErr
}

type mockUsers struct {
	getUser    *models.User
	getErr     error
	updated    *models.User
	updateErr  error
	deleted    *models.User
	deleteErr  error
	setErr     error
	avatar     []byte
	avatarErr  error
	delAvaErr  error
	lastRaw    []byte
	lastSetID  int
	lastAvatar []byte
}

func (m *mockUsers) Get(_ context.Context, _ int) (*models.User, error) {
	return m.getUser, m.getErr
}

func (m *mockUsers) Update(_ context.Context, _ int, rawBody []byte) (*models.User, error) {
	m.lastRaw = rawBody
	return m.updated, m.updateErr
}

func (m *mockUsers) Delete(_ context.Context, _ int) (*models.User, error) {
	return m.deleted, m.deleteErr
}

func (m *mockUsers) SetAvatar(_ context.Context, id int, data []byte) error {
	m.lastSetID = id
	m.lastAvatar = data
	return m.setErr
}

func (m *mockUsers) GetAvatar(_ context.Context, _ int) ([]byte, error) {
	return m.avatar, m.avatarErr
}

func (m *mockUsers) DeleteAvatar(_ context.Context, _ int) error {
	return m.delAvaErr
}

type mockTasks struct {
	created   *models.Task
	createErr error
	listResp  []models.Task
	listErr   error
	getTask   *models.Task
	getErr    error
	updated   *models.Task
	updateErr error
	deleted   *models.Task
	deleteErr error

	lastOwnerID     int
	lastDescription string
	lastFilter      service.TaskFilter
	lastTaskID      string
	lastRaw         []byte
}

func (m *mockTasks) Create(_ context.Context, ownerID int, description string) (*models.Task, error) {
	m.lastOwnerID = ownerID
	m.lastDescription = description
	return m.created, m.createErr
}

func (m *mockTasks) List(_ context.Context, ownerID int, f service.TaskFilter) ([]models.Task, error) {
	m.lastOwnerID = ownerID
	m.lastFilter = f
	return m.listResp, m.listErr
}

func (m *mockTasks) Get(_ context.Context, ownerID int, taskID string) (*models.Task, error) {
	m.lastOwnerID = ownerID
	m.lastTaskID = taskID
	return m.getTask, m.getErr
}

func (m *mockTasks) Update(_ context.Context, ownerID int, taskID string, rawBody []byte) (*models.Task, error) {
	m.lastOwnerID = ownerID
	m.lastTaskID = taskID
	m.lastRaw = rawBody
	return m.updated, m.updateErr
}

func (m *mockTasks) Delete(_ context.Context, ownerID int, taskID string) (*models.Task, error) {
	m.lastOwnerID = ownerID
	m.lastTaskID = taskID
	return m.deleted, m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func testUser() *models.User {
	return &models.User{ID: 7, Name: "Mike", Email: "mike@x.com", PasswordHash: "secret-hash"}
}
