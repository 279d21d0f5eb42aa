// Package session owns the client's bearer credential.
//
// Store is the single in-memory source of truth: the transport reads it for
// every outbound request and clears it on a 401, the session guard subscribes
// to it, and Persister mirrors it into the local metadata table so a session
// survives restarts. Describe inspects a credential for display only; the
// signature is never verified on the client.
package session
