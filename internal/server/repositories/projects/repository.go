package projects

import (
	"context"

	"github.com/dmitrijs2005/ciphersafe/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
}
