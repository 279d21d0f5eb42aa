package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/dmitrijs2005/ciphersafe/internal/dbx"
	"github.com/dmitrijs2005/ciphersafe/internal/server/models"
	"github.com/dmitrijs2005/ciphersafe/internal/server/repositories/repomanager"
)

type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{db: db, repomanager: m}
}

func (s *ProjectService) Create(ctx context.Context, ownerID int64, name string) (*models.Project, error) {
	repo := s.repomanager.Projects(s.db)
	p, err := repo.Create(ctx, &models.Project{Name: name, OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, ownerID int64) ([]models.Project, error) {
	repo := s.repomanager.Projects(s.db)
	list, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	return list, nil
}

// authorizeProject returns common.ErrorForbidden unless the project exists
// and belongs to userID.
func authorizeProject(ctx context.Context, m repomanager.RepositoryManager, db dbx.DBTX, userID, projectID int64) error {
	p, err := m.Projects(db).GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorForbidden
		}
		return fmt.Errorf("error loading project: %w", err)
	}
	if p.OwnerID != userID {
		return common.ErrorForbidden
	}
	return nil
}
