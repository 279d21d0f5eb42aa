package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/dmitrijs2005/ciphersafe/internal/logging"
	"github.com/dmitrijs2005/ciphersafe/internal/server/auth"
	"github.com/dmitrijs2005/ciphersafe/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type fakeUsers struct {
	registerErr error
	loginErr    error
	email       string
}

func (f *fakeUsers) Register(_ context.Context, email, _ string) (*models.User, error) {
	f.email = email
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: 1, Email: email}, nil
}

func (f *fakeUsers) Login(_ context.Context, email, _ string) (string, error) {
	f.email = email
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "signed-token", nil
}

type fakeProjects struct {
	list    []models.Project
	err     error
	ownerID int64
}

func (f *fakeProjects) Create(_ context.Context, ownerID int64, name string) (*models.Project, error) {
	f.ownerID = ownerID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Project{ID: 3, Name: name, OwnerID: ownerID}, nil
}

func (f *fakeProjects) List(_ context.Context, ownerID int64) ([]models.Project, error) {
	f.ownerID = ownerID
	return f.list, f.err
}

type fakeSecrets struct {
	list      []models.Secret
	err       error
	created   *models.Secret
	deletedID int64
}

func (f *fakeSecrets) Create(_ context.Context, _, projectID int64, key, value string) (*models.Secret, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &models.Secret{ID: 9, ProjectID: projectID, Key: key, Value: value}
	return f.created, nil
}

func (f *fakeSecrets) List(context.Context, int64, int64) ([]models.Secret, error) {
	return f.list, f.err
}

func (f *fakeSecrets) Delete(_ context.Context, _, secretID int64) error {
	f.deletedID = secretID
	return f.err
}

type fixture struct {
	users    *fakeUsers
	projects *fakeProjects
	secrets  *fakeSecrets
	handler  http.Handler
}

func newFixture() *fixture {
	f := &fixture{users: &fakeUsers{}, projects: &fakeProjects{}, secrets: &fakeSecrets{}}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewHandlers(f.users, f.projects, f.secrets, logger)
	f.handler = NewRouter(h, testSecret, []string{"http://localhost:3000"}, logger)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		token, err := auth.GenerateToken(userID, testSecret, time.Hour)
		require.NoError(t, err)
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantText string
	}{
		{"created", `{"email":"a@example.org","password":"password1"}`, nil, http.StatusCreated, "User registered successfully"},
		{"bad json", `{`, nil, http.StatusBadRequest, "invalid request body"},
		{"bad email", `{"email":"nope","password":"password1"}`, nil, http.StatusBadRequest, "email is invalid"},
		{"short password", `{"email":"a@example.org","password":"short"}`, nil, http.StatusBadRequest, "password must be at least 8 characters"},
		{"taken", `{"email":"a@example.org","password":"password1"}`, common.ErrorAlreadyExists, http.StatusConflict, "user with this email already exists"},
		{"internal", `{"email":"a@example.org","password":"password1"}`, errors.New("db"), http.StatusInternalServerError, "Failed to register user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.users.registerErr = tt.err

			rec := f.do(t, http.MethodPost, "/auth/register", tt.body, 0)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantText)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture()
	rec := f.do(t, http.MethodPost, "/auth/login", `{"email":"a@example.org","password":"password1"}`, 0)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"signed-token"}`, rec.Body.String())
	assert.Equal(t, "a@example.org", f.users.email)

	f.users.loginErr = common.ErrorUnauthorized
	rec = f.do(t, http.MethodPost, "/auth/login", `{"email":"a@example.org","password":"password1"}`, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid email or password", errorOf(t, rec))

	f.users.loginErr = common.ErrorInternal
	rec = f.do(t, http.MethodPost, "/auth/login", `{"email":"a@example.org","password":"password1"}`, 0)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Login failed", errorOf(t, rec))
}

func TestAPI_RequiresToken(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/api/projects", "", 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authorization header required", errorOf(t, rec))

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set(common.AuthorizationHeaderName, "Basic abc")
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer token required", errorOf(t, rec))

	expired, err := auth.GenerateToken(5, testSecret, -time.Minute)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+expired)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, errorOf(t, rec), "Invalid token")
}

func TestProjects(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/api/projects", "", 5)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Equal(t, int64(5), f.projects.ownerID)

	rec = f.do(t, http.MethodPost, "/api/projects", `{"name":"  web "}`, 5)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"ID":3,"name":"web","owner_id":5}`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/projects", `{"name":""}`, 5)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.projects.err = errors.New("db")
	rec = f.do(t, http.MethodGet, "/api/projects", "", 5)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to retrieve projects", errorOf(t, rec))
}

func TestSecrets(t *testing.T) {
	f := newFixture()
	f.secrets.list = []models.Secret{{ID: 11, ProjectID: 1, Key: "DB_PASS", Value: "hunter2"}}

	rec := f.do(t, http.MethodGet, "/api/projects/1/secrets", "", 5)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":11,"project_id":1,"key":"DB_PASS","value":"hunter2"}]`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/projects/abc/secrets", "", 5)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid project ID", errorOf(t, rec))

	rec = f.do(t, http.MethodPost, "/api/secrets", `{"project_id":1,"key":"K","value":"V"}`, 5)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Secret created successfully"}`, rec.Body.String())
	assert.Equal(t, "V", f.secrets.created.Value)

	rec = f.do(t, http.MethodPost, "/api/secrets", `{"project_id":1,"key":"","value":"V"}`, 5)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/secrets/11", "", 5)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(11), f.secrets.deletedID)
}

func TestSecrets_ErrorMapping(t *testing.T) {
	f := newFixture()

	f.secrets.err = common.ErrorForbidden
	rec := f.do(t, http.MethodGet, "/api/projects/2/secrets", "", 5)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/secrets", `{"project_id":2,"key":"K","value":"V"}`, 5)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/secrets/3", "", 5)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission for this secret", errorOf(t, rec))

	f.secrets.err = common.ErrorNotFound
	rec = f.do(t, http.MethodDelete, "/api/secrets/3", "", 5)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Secret not found", errorOf(t, rec))
}
