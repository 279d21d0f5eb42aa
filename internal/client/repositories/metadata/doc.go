// Package metadata persists client-local key/value settings, such as the
// session credential, in the CLI's SQLite database.
//
// Typical Usage
//
//	repo := metadata.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, metadata.KeySessionToken, token)
//	token, err := repo.Get(ctx, metadata.KeySessionToken)
//	if errors.Is(err, common.ErrorNotFound) {
//	    // no stored session
//	}
package metadata
