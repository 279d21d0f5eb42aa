package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/dmitrijs2005/ciphersafe/internal/cryptox"
	"github.com/dmitrijs2005/ciphersafe/internal/dbx"
	"github.com/dmitrijs2005/ciphersafe/internal/logging"
	"github.com/dmitrijs2005/ciphersafe/internal/server/models"
	"github.com/dmitrijs2005/ciphersafe/internal/server/repositories/repomanager"
)

// SecretService stores secret values sealed with the master key and checks
// that the caller owns the project on every operation.
type SecretService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sealer      *cryptox.Sealer
	logger      logging.Logger
}

func NewSecretService(db *sql.DB, m repomanager.RepositoryManager, sealer *cryptox.Sealer, logger logging.Logger) *SecretService {
	return &SecretService{db: db, repomanager: m, sealer: sealer, logger: logger}
}

func (s *SecretService) Create(ctx context.Context, userID, projectID int64, key, value string) (*models.Secret, error) {
	if err := authorizeProject(ctx, s.repomanager, s.db, userID, projectID); err != nil {
		return nil, err
	}

	sealed, err := s.sealer.Seal(value)
	if err != nil {
		return nil, fmt.Errorf("error sealing secret: %w", err)
	}

	secret, err := s.repomanager.Secrets(s.db).Create(ctx, &models.Secret{ProjectID: projectID, Key: key, Value: sealed})
	if err != nil {
		return nil, fmt.Errorf("error saving secret: %w", err)
	}
	secret.Value = value
	return secret, nil
}

// List returns the project's secrets with plaintext values. Values that no
// longer open under the master key are left out.
func (s *SecretService) List(ctx context.Context, userID, projectID int64) ([]models.Secret, error) {
	if err := authorizeProject(ctx, s.repomanager, s.db, userID, projectID); err != nil {
		return nil, err
	}

	stored, err := s.repomanager.Secrets(s.db).ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error listing secrets: %w", err)
	}

	result := make([]models.Secret, 0, len(stored))
	for _, sec := range stored {
		plain, err := s.sealer.Open(sec.Value)
		if err != nil {
			s.logger.Warn(ctx, "skipping undecryptable secret", "secret_id", sec.ID, "error", err)
			continue
		}
		sec.Value = plain
		result = append(result, sec)
	}
	return result, nil
}

// Delete removes a secret in one transaction with its ownership check.
// Missing secrets yield common.ErrorNotFound, foreign ones
// common.ErrorForbidden.
func (s *SecretService) Delete(ctx context.Context, userID, secretID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Secrets(tx)
		secret, err := repo.GetByID(ctx, secretID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return err
			}
			return fmt.Errorf("error loading secret: %w", err)
		}
		if err := authorizeProject(ctx, s.repomanager, tx, userID, secret.ProjectID); err != nil {
			return err
		}
		return repo.Delete(ctx, secretID)
	})
}
