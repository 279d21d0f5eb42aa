package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/ciphersafe/internal/dbx"
	"github.com/dmitrijs2005/ciphersafe/internal/server/migrations"
	"github.com/dmitrijs2005/ciphersafe/internal/server/repositories/projects"
	"github.com/dmitrijs2005/ciphersafe/internal/server/repositories/secrets"
	"github.com/dmitrijs2005/ciphersafe/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager serves PostgreSQL (driver "pgx") and SQLite (driver
// "sqlite"). The repositories share one set of queries; only the migrations
// differ.
type SQLRepositoryManager struct {
	dialect string
	dir     string
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Projects(db dbx.DBTX) projects.Repository {
	return projects.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Secrets(db dbx.DBTX) secrets.Repository {
	return secrets.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, m.dir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// NewRepositoryManager picks the migration set for a database/sql driver
// name as returned by dbx.DriverForDSN.
func NewRepositoryManager(driver string) (RepositoryManager, error) {
	switch driver {
	case "pgx":
		return &SQLRepositoryManager{dialect: "postgres", dir: migrations.PostgresDir}, nil
	case "sqlite":
		return &SQLRepositoryManager{dialect: "sqlite3", dir: migrations.SQLiteDir}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}
