package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/dmitrijs2005/ciphersafe/internal/dbx"
	"github.com/dmitrijs2005/ciphersafe/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, secret *models.Secret) (*models.Secret, error) {
	query :=
		`INSERT INTO secrets (project_id, key, value)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, secret.ProjectID, secret.Key, secret.Value).Scan(&secret.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return secret, nil
}

func (r *SQLRepository) ListByProject(ctx context.Context, projectID int64) ([]models.Secret, error) {
	query :=
		`SELECT id, project_id, key, value FROM secrets
		 WHERE project_id = $1
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Secret, 0)
	for rows.Next() {
		var s models.Secret
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Secret, error) {
	query :=
		`SELECT id, project_id, key, value FROM secrets
		 WHERE id = $1`

	s := &models.Secret{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.ProjectID, &s.Key, &s.Value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM secrets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
