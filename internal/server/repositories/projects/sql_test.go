package projects

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/dmitrijs2005/ciphersafe/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewSQLRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO projects (name, owner_id)")).
		WithArgs("web", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	got, err := repo.Create(context.Background(), &models.Project{Name: "web", OwnerID: 5})
	require.NoError(t, err)
	assert.Equal(t, &models.Project{ID: 3, Name: "web", OwnerID: 5}, got)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO projects")).
		WillReturnError(errors.New("fk violation"))

	_, err := repo.Create(context.Background(), &models.Project{Name: "web", OwnerID: 5})
	assert.ErrorContains(t, err, "db error: fk violation")
}

func TestListByOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, owner_id FROM projects")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id"}).
			AddRow(1, "web", 5).
			AddRow(2, "api", 5))

	got, err := repo.ListByOwner(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []models.Project{
		{ID: 1, Name: "web", OwnerID: 5},
		{ID: 2, Name: "api", OwnerID: 5},
	}, got)
}

func TestListByOwner_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, owner_id FROM projects")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id"}))

	got, err := repo.ListByOwner(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByOwner_RowError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, owner_id FROM projects")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id"}).
			AddRow(1, "web", 5).
			RowError(0, errors.New("broken row")))

	_, err := repo.ListByOwner(context.Background(), 5)
	assert.ErrorContains(t, err, "broken row")
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, owner_id FROM projects")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id"}).AddRow(1, "web", 5))

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.OwnerID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, owner_id FROM projects")).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
