package metadata

import "context"

// Repository is the client-local settings store. Get returns
// common.ErrorNotFound for a key that was never set or was deleted.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
