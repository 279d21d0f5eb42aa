package secrets

import (
	"context"

	"github.com/dmitrijs2005/ciphersafe/internal/server/models"
)

// Repository stores secrets with their values already sealed.
type Repository interface {
	Create(ctx context.Context, secret *models.Secret) (*models.Secret, error)
	ListByProject(ctx context.Context, projectID int64) ([]models.Secret, error)
	GetByID(ctx context.Context, id int64) (*models.Secret, error)
	Delete(ctx context.Context, id int64) error
}
