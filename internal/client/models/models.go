// Package models defines the client-side view of the CipherSafe API payloads.
package models

// Project is a named grouping of secrets owned by the session's user.
// The backend serializes the identifier as "ID"; encoding/json matches
// field names case-insensitively, so both spellings decode into ID.
type Project struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

// Secret is a key/value pair scoped to exactly one project.
type Secret struct {
	ID        int64  `json:"id"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	ProjectID int64  `json:"project_id"`
}

// Credentials is the body of the register and login calls.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewProject is the body of the create-project call.
type NewProject struct {
	Name string `json:"name"`
}

// NewSecret is the body of the create-secret call.
type NewSecret struct {
	ProjectID int64  `json:"project_id"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// MaskedValue is what a hidden secret value renders as.
const MaskedValue = "••••••••••••"

// Display returns the value in clear text when revealed, masked otherwise.
func (s Secret) Display(revealed bool) string {
	if revealed {
		return s.Value
	}
	return MaskedValue
}
