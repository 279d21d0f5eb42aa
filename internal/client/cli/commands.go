package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/ciphersafe/internal/client/models"
	"github.com/dmitrijs2005/ciphersafe/internal/client/session"
)

// nowFn is a test seam for the expiry check in PrintStatus.
var nowFn = time.Now

// StatusReport is what the status command prints.
type StatusReport struct {
	Authenticated bool       `json:"authenticated"`
	APIURL        string     `json:"api_url"`
	Persisted     bool       `json:"persisted"`
	Subject       string     `json:"subject,omitempty"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Expired       bool       `json:"expired"`
}

// Status describes the held session. Token claims are decoded without
// verification and are informational only.
func (a *App) Status() StatusReport {
	r := StatusReport{
		APIURL:    a.config.APIBaseURL,
		Persisted: a.persister != nil,
	}
	credential, ok := a.store.Get()
	if !ok {
		return r
	}
	r.Authenticated = true

	info, err := session.Describe(credential)
	if err != nil {
		a.logger.Debug(context.Background(), "credential is not a JWT", "error", err)
		return r
	}
	r.Subject = info.Subject
	if !info.IssuedAt.IsZero() {
		iat := info.IssuedAt
		r.IssuedAt = &iat
	}
	if !info.ExpiresAt.IsZero() {
		exp := info.ExpiresAt
		r.ExpiresAt = &exp
	}
	r.Expired = info.Expired(nowFn())
	return r
}

// PrintStatus writes Status to w as text or JSON.
func (a *App) PrintStatus(w io.Writer, asJSON bool) error {
	r := a.Status()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Fprintf(w, "Server: %s\n", r.APIURL)
	if !r.Authenticated {
		fmt.Fprintln(w, "Not logged in")
		return nil
	}
	fmt.Fprintln(w, "Logged in")
	if r.Subject != "" {
		fmt.Fprintf(w, "  User: %s\n", r.Subject)
	}
	if r.ExpiresAt != nil {
		state := "valid"
		if r.Expired {
			state = "expired"
		}
		fmt.Fprintf(w, "  Expires: %s (%s)\n", r.ExpiresAt.Local().Format(time.DateTime), state)
	}
	return nil
}

// ListProjects prints the project list once.
func (a *App) ListProjects(ctx context.Context, w io.Writer) error {
	if !a.store.Authenticated() {
		return errSessionRequired
	}
	b := a.newBrowser()
	defer b.Close()

	if err := b.LoadProjects(ctx); err != nil {
		return err
	}
	renderProjects(w, b.Snapshot())
	return nil
}

// ListSecrets prints the secrets of one project, masked unless reveal is set.
func (a *App) ListSecrets(ctx context.Context, w io.Writer, projectID int64, reveal bool) error {
	if !a.store.Authenticated() {
		return errSessionRequired
	}
	b := a.newBrowser()
	defer b.Close()

	if err := b.SelectProject(ctx, models.Project{ID: projectID}); err != nil {
		return err
	}
	secrets := b.Snapshot().Secrets
	if len(secrets) == 0 {
		fmt.Fprintf(w, "No secrets in project %d.\n", projectID)
		return nil
	}
	for i := range secrets {
		secrets[i].Revealed = reveal
	}
	writeSecrets(w, secrets)
	return nil
}
