package secrets

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

var columns = []string{"id", "project_id", "key", "value"}

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

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO secrets (project_id, key, value)")).
		WithArgs(int64(1), "DB_PASS", "sealed").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	got, err := repo.Create(context.Background(), &models.Secret{ProjectID: 1, Key: "DB_PASS", Value: "sealed"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
}

func TestListByProject(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, project_id, key, value FROM secrets")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(11, 1, "DB_PASS", "a").
			AddRow(12, 1, "API_KEY", "b"))

	got, err := repo.ListByProject(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "API_KEY", got[1].Key)
}

func TestListByProject_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, project_id, key, value FROM secrets")).
		WillReturnError(errors.New("gone"))

	_, err := repo.ListByProject(context.Background(), 1)
	assert.ErrorContains(t, err, "db error: gone")
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, project_id, key, value FROM secrets")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, project_id, key, value FROM secrets")).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(11, 1, "DB_PASS", "a"))

	got, err := repo.GetByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, &models.Secret{ID: 11, ProjectID: 1, Key: "DB_PASS", Value: "a"}, got)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM secrets WHERE id = $1")).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 11))
}

func TestDelete_NoRows(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM secrets WHERE id = $1")).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 11), common.ErrorNotFound)
}
