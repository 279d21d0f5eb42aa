package client

import (
	"context"

	"github.com/dmitrijs2005/ciphersafe/internal/client/models"
)

// Client is the CipherSafe backend API as seen by the CLI.
type Client interface {
	// Register creates an account and returns the server's confirmation text.
	Register(ctx context.Context, creds models.Credentials) (string, error)
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds models.Credentials) (string, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, p models.NewProject) (models.Project, error)
	ListSecrets(ctx context.Context, projectID int64) ([]models.Secret, error)
	CreateSecret(ctx context.Context, s models.NewSecret) error
	DeleteSecret(ctx context.Context, secretID int64) error
}
