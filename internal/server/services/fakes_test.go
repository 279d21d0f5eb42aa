package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/dmitrijs2005/ciphersafe/internal/dbx"
	"github.com/dmitrijs2005/ciphersafe/internal/logging"
	"github.com/dmitrijs2005/ciphersafe/internal/server/config"
	"github.com/dmitrijs2005/ciphersafe/internal/server/models"
	"github.com/dmitrijs2005/ciphersafe/internal/server/repositories/projects"
	"github.com/dmitrijs2005/ciphersafe/internal/server/repositories/secrets"
	"github.com/dmitrijs2005/ciphersafe/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecretKey = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:  testSecretKey,
		MasterKey:  "0123456789abcdef0123456789abcdef",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	nextID  int64
	err     error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	u.ID = f.nextID
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeProjectsRepo struct {
	items  []models.Project
	nextID int64
	err    error
}

func (f *fakeProjectsRepo) Create(_ context.Context, p *models.Project) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	p.ID = f.nextID
	f.items = append(f.items, *p)
	return p, nil
}

func (f *fakeProjectsRepo) ListByOwner(_ context.Context, ownerID int64) ([]models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Project, 0)
	for _, p := range f.items {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectsRepo) GetByID(_ context.Context, id int64) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.items {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeSecretsRepo struct {
	items  []models.Secret
	nextID int64
}

func (f *fakeSecretsRepo) Create(_ context.Context, s *models.Secret) (*models.Secret, error) {
	f.nextID++
	s.ID = f.nextID
	f.items = append(f.items, *s)
	return s, nil
}

func (f *fakeSecretsRepo) ListByProject(_ context.Context, projectID int64) ([]models.Secret, error) {
	out := make([]models.Secret, 0)
	for _, s := range f.items {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSecretsRepo) GetByID(_ context.Context, id int64) (*models.Secret, error) {
	for _, s := range f.items {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeSecretsRepo) Delete(_ context.Context, id int64) error {
	for i, s := range f.items {
		if s.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeRepoManager struct {
	users    *fakeUsersRepo
	projects *fakeProjectsRepo
	secrets  *fakeSecretsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    &fakeUsersRepo{byEmail: map[string]*models.User{}},
		projects: &fakeProjectsRepo{},
		secrets:  &fakeSecretsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return m.users }
func (m *fakeRepoManager) Projects(dbx.DBTX) projects.Repository       { return m.projects }
func (m *fakeRepoManager) Secrets(dbx.DBTX) secrets.Repository         { return m.secrets }
