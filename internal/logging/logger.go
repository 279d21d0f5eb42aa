// Package logging hides the concrete logging backend behind one small
// interface. The CLI writes slog text records to stderr; the development
// server logs through zap.
package logging

import "context"

// Logger takes a message plus alternating key and value arguments:
//
//	log.Warn(ctx, "secret skipped", "secret_id", id, "err", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With binds attributes to every record written by the returned logger.
	With(args ...any) Logger
}
