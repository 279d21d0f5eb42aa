package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/dmitrijs2005/ciphersafe/internal/cryptox"
	"github.com/dmitrijs2005/ciphersafe/internal/dbx"
	"github.com/dmitrijs2005/ciphersafe/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSecretService(t *testing.T) (*SecretService, *fakeRepoManager) {
	t.Helper()
	// Delete runs in a real transaction; the repositories are fakes.
	db, err := dbx.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sealer, err := cryptox.NewSealer([]byte(testConfig().MasterKey))
	require.NoError(t, err)

	rm := newFakeRepoManager()
	rm.projects.items = []models.Project{
		{ID: 1, Name: "web", OwnerID: 5},
		{ID: 2, Name: "api", OwnerID: 6},
	}
	rm.projects.nextID = 2
	return NewSecretService(db, rm, sealer, discardLogger()), rm
}

func TestSecretService_CreateSealsValue(t *testing.T) {
	s, rm := newSecretService(t)

	got, err := s.Create(context.Background(), 5, 1, "DB_PASS", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got.Value)

	require.Len(t, rm.secrets.items, 1)
	stored := rm.secrets.items[0].Value
	assert.NotEqual(t, "hunter2", stored)
	assert.NotContains(t, stored, "hunter2")
}

func TestSecretService_CreateForeignProject(t *testing.T) {
	s, rm := newSecretService(t)

	_, err := s.Create(context.Background(), 5, 2, "K", "V")
	assert.ErrorIs(t, err, common.ErrorForbidden)

	_, err = s.Create(context.Background(), 5, 99, "K", "V")
	assert.ErrorIs(t, err, common.ErrorForbidden)
	assert.Empty(t, rm.secrets.items)
}

func TestSecretService_ListOpensAndSkipsBroken(t *testing.T) {
	s, rm := newSecretService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, 5, 1, "DB_PASS", "hunter2")
	require.NoError(t, err)
	rm.secrets.items = append(rm.secrets.items, models.Secret{ID: 50, ProjectID: 1, Key: "BROKEN", Value: "zz"})

	list, err := s.List(ctx, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, []models.Secret{{ID: 1, ProjectID: 1, Key: "DB_PASS", Value: "hunter2"}}, list)

	_, err = s.List(ctx, 6, 1)
	assert.ErrorIs(t, err, common.ErrorForbidden)
}

func TestSecretService_ListEmptyIsNotNil(t *testing.T) {
	s, _ := newSecretService(t)

	list, err := s.List(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.NotNil(t, list)
}

func TestSecretService_Delete(t *testing.T) {
	s, rm := newSecretService(t)
	ctx := context.Background()

	sec, err := s.Create(ctx, 5, 1, "DB_PASS", "hunter2")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(ctx, 6, sec.ID), common.ErrorForbidden)
	assert.Len(t, rm.secrets.items, 1)

	require.NoError(t, s.Delete(ctx, 5, sec.ID))
	assert.Empty(t, rm.secrets.items)

	assert.ErrorIs(t, s.Delete(ctx, 5, sec.ID), common.ErrorNotFound)
}
