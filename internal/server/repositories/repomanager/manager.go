// Package repomanager vends repository implementations for one database and
// runs its schema migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/ciphersafe/internal/dbx"
	"github.com/dmitrijs2005/ciphersafe/internal/server/repositories/projects"
	"github.com/dmitrijs2005/ciphersafe/internal/server/repositories/secrets"
	"github.com/dmitrijs2005/ciphersafe/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Projects(db dbx.DBTX) projects.Repository
	Secrets(db dbx.DBTX) secrets.Repository
}
