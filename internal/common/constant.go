// Package common contains shared constants and sentinel errors used across
// CipherSafe components.
package common

// AuthorizationHeaderName is the HTTP header carrying the session credential.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the credential inside the Authorization header.
const BearerScheme = "Bearer "

// RequestIDHeaderName correlates client and server log lines for one request.
const RequestIDHeaderName = "X-Request-ID"

// Navigation targets shared by the transport, the session guard and the CLI.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)
