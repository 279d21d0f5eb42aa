// Package cli provides the ciphersafe command-line client.
//
// It wires configuration, the local session database, the HTTP API behind
// the authorizing transport, and the terminal collaborators (notifier,
// spinner, confirmation prompt, clipboard). Commands:
//
//   - login, register, logout: manage the session
//   - status: show the held session and its expiry
//   - projects, secrets <project-id>: one-shot listings
//   - shell: an interactive REPL with a login and a dashboard screen
//   - version: build information
//
// The REPL is started via App.Shell(ctx), which blocks until the user exits.
// See NewRootCommand, App and runREPL for details.
package cli
