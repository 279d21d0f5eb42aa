// Package client contains the client-side building blocks for talking to the
// CipherSafe backend.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface): Register, Login and CRUD
//     over projects and secrets.
//  2. A JSON-over-HTTP implementation (HTTPClient) that decodes the server's
//     {"error": ...} bodies into *APIError.
//  3. AuthTransport, an http.RoundTripper that attaches the session's bearer
//     credential to every request and invalidates the session on any 401.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI's
//     SQLite file.
//
// # Error Handling
//
// Callers match errors with errors.Is: ErrUnauthorized (any 401),
// ErrUnavailable (no response), ErrValidation (input rejected before a
// request), ErrNoProjectSelected. UserMessage turns an error into the text a
// notifier shows.
//
// Concurrency & Contexts
//
// HTTPClient and AuthTransport are safe for concurrent use. Every call takes
// a context.Context; the http.Client timeout bounds each request.
package client
