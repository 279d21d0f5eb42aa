package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/ciphersafe/internal/client/client"
	"github.com/dmitrijs2005/ciphersafe/internal/client/models"
	"github.com/dmitrijs2005/ciphersafe/internal/client/ui"
	"github.com/dmitrijs2005/ciphersafe/internal/logging"
)

// ErrClosed is returned by operations on a closed Browser.
var ErrClosed = errors.New("browser closed")

const (
	msgLoadProjectsFailed  = "Failed to load projects"
	msgLoadSecretsFailed   = "Failed to load secrets"
	msgProjectCreated      = "Project created!"
	msgCreateProjectFailed = "Failed to create project"
	msgSecretCreated       = "Secret created!"
	msgCreateSecretFailed  = "Failed to create secret"
	msgSecretDeleted       = "Secret deleted"
	msgDeleteSecretFailed  = "Failed to delete secret"
	msgCopied              = "Copied to clipboard!"
	msgCopyFailed          = "Failed to copy to clipboard"
	questionDeleteSecret   = "Are you sure you want to delete this secret?"
)

// API is the part of client.Client the browser calls.
type API interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, p models.NewProject) (models.Project, error)
	ListSecrets(ctx context.Context, projectID int64) ([]models.Secret, error)
	CreateSecret(ctx context.Context, s models.NewSecret) error
	DeleteSecret(ctx context.Context, secretID int64) error
}

// Deps are the browser's collaborators. Indicator and Logger may be nil.
type Deps struct {
	API       API
	Notifier  ui.Notifier
	Confirmer ui.Confirmer
	Clipboard ui.Clipboard
	Indicator ui.Indicator
	Logger    logging.Logger
}

type Browser struct {
	api       API
	notifier  ui.Notifier
	confirmer ui.Confirmer
	clipboard ui.Clipboard
	indicator ui.Indicator
	logger    logging.Logger

	mu sync.Mutex

	projects        []models.Project
	projectsLoaded  bool
	projectsGen     uint64
	loadingProjects bool

	selected    models.Project
	hasSelected bool
	// selectionGen changes on every selection, including reselection of the
	// same project.
	selectionGen   uint64
	secrets        []models.Secret
	secretsLoaded  bool
	loadingSecrets bool
	visible        map[int64]bool

	projectName string
	secretKey   string
	secretValue string

	closed bool
}

func New(d Deps) *Browser {
	b := &Browser{
		api:       d.API,
		notifier:  d.Notifier,
		confirmer: d.Confirmer,
		clipboard: d.Clipboard,
		indicator: d.Indicator,
		logger:    d.Logger,
		visible:   make(map[int64]bool),
	}
	if b.indicator == nil {
		b.indicator = nopIndicator{}
	}
	if b.logger == nil {
		b.logger = logging.Discard()
	}
	return b
}

// LoadProjects replaces the project list with the server's. On failure the
// previous list stays.
func (b *Browser) LoadProjects(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.projectsGen++
	gen := b.projectsGen
	b.loadingProjects = true
	b.mu.Unlock()

	b.indicator.Start("Loading projects...")
	projects, err := b.api.ListProjects(ctx)
	b.indicator.Stop()

	b.mu.Lock()
	if b.closed || gen != b.projectsGen {
		b.mu.Unlock()
		b.logger.Debug(ctx, "dropping stale project list")
		return nil
	}
	b.loadingProjects = false
	if err == nil {
		if projects == nil {
			projects = []models.Project{}
		}
		b.projects = projects
		b.projectsLoaded = true
	}
	b.mu.Unlock()

	if err != nil {
		b.report(err, msgLoadProjectsFailed)
		return fmt.Errorf("list projects: %w", err)
	}
	return nil
}

// SelectProject makes p the selection, clears secrets and reveal flags, and
// fetches p's secrets. A failed fetch keeps the selection with an empty list.
func (b *Browser) SelectProject(ctx context.Context, p models.Project) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.selected = p
	b.hasSelected = true
	b.selectionGen++
	gen := b.selectionGen
	b.secrets = nil
	b.secretsLoaded = false
	b.visible = make(map[int64]bool)
	b.loadingSecrets = true
	b.mu.Unlock()

	return b.fetchSecrets(ctx, gen, p.ID)
}

// SelectProjectByID selects a project from the loaded list.
func (b *Browser) SelectProjectByID(ctx context.Context, id int64) error {
	b.mu.Lock()
	var (
		found models.Project
		ok    bool
	)
	for _, p := range b.projects {
		if p.ID == id {
			found, ok = p, true
			break
		}
	}
	b.mu.Unlock()

	if !ok {
		err := client.Invalid(fmt.Sprintf("No project with id %d", id))
		b.report(err, "")
		return err
	}
	return b.SelectProject(ctx, found)
}

// RefreshSecrets re-fetches the selected project's secrets and replaces the
// list on success. The current list stays visible meanwhile.
func (b *Browser) RefreshSecrets(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	if !b.hasSelected {
		b.mu.Unlock()
		b.report(client.ErrNoProjectSelected, "")
		return client.ErrNoProjectSelected
	}
	gen := b.selectionGen
	projectID := b.selected.ID
	b.loadingSecrets = true
	b.mu.Unlock()

	return b.fetchSecrets(ctx, gen, projectID)
}

// fetchSecrets applies the response only while gen and projectID still
// describe the current selection.
func (b *Browser) fetchSecrets(ctx context.Context, gen uint64, projectID int64) error {
	b.indicator.Start("Loading secrets...")
	secrets, err := b.api.ListSecrets(ctx, projectID)
	b.indicator.Stop()

	b.mu.Lock()
	if b.closed || gen != b.selectionGen || !b.hasSelected || b.selected.ID != projectID {
		b.mu.Unlock()
		b.logger.Debug(ctx, "dropping stale secrets", "project_id", projectID)
		return nil
	}
	b.loadingSecrets = false
	if err == nil {
		if secrets == nil {
			secrets = []models.Secret{}
		}
		b.secrets = secrets
		b.secretsLoaded = true
	}
	b.mu.Unlock()

	if err != nil {
		b.report(err, msgLoadSecretsFailed)
		return fmt.Errorf("list secrets of project %d: %w", projectID, err)
	}
	return nil
}

// SetProjectName updates the create-project draft.
func (b *Browser) SetProjectName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.projectName = name
}

// CreateProject submits the draft name and prepends the project the server
// returns. The draft is cleared only on success.
func (b *Browser) CreateProject(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	name := strings.TrimSpace(b.projectName)
	b.mu.Unlock()

	if name == "" {
		err := client.Invalid("Project name is required")
		b.report(err, "")
		return err
	}

	project, err := b.api.CreateProject(ctx, models.NewProject{Name: name})
	if err != nil {
		if b.isClosed() {
			return nil
		}
		b.report(err, msgCreateProjectFailed)
		return fmt.Errorf("create project: %w", err)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.projects = append([]models.Project{project}, b.projects...)
	b.projectsLoaded = true
	// A list fetched before the create would drop the new project.
	b.projectsGen++
	b.loadingProjects = false
	b.projectName = ""
	b.mu.Unlock()

	b.notifier.Success(msgProjectCreated)
	return nil
}

// SetSecretDraft updates the create-secret draft.
func (b *Browser) SetSecretDraft(key, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.secretKey = key
	b.secretValue = value
}

// CreateSecret stores the draft in the selected project and then re-fetches
// that project's secrets. The draft is cleared only on success.
func (b *Browser) CreateSecret(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	hasSelected := b.hasSelected
	projectID := b.selected.ID
	gen := b.selectionGen
	key := strings.TrimSpace(b.secretKey)
	value := b.secretValue
	b.mu.Unlock()

	var err error
	switch {
	case !hasSelected:
		err = client.ErrNoProjectSelected
	case key == "":
		err = client.Invalid("Secret key is required")
	case value == "":
		err = client.Invalid("Secret value is required")
	}
	if err != nil {
		b.report(err, "")
		return err
	}

	if err := b.api.CreateSecret(ctx, models.NewSecret{ProjectID: projectID, Key: key, Value: value}); err != nil {
		if b.isClosed() {
			return nil
		}
		b.report(err, msgCreateSecretFailed)
		return fmt.Errorf("create secret: %w", err)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.secretKey = ""
	b.secretValue = ""
	current := gen == b.selectionGen
	if current {
		b.loadingSecrets = true
	}
	b.mu.Unlock()

	b.notifier.Success(msgSecretCreated)
	if !current {
		return nil
	}
	return b.fetchSecrets(ctx, gen, projectID)
}

// DeleteSecret asks for confirmation, deletes the secret and drops it from
// the local list. A declined confirmation sends nothing and reports nothing.
func (b *Browser) DeleteSecret(ctx context.Context, secretID int64) error {
	if b.isClosed() {
		return ErrClosed
	}
	if !b.confirmer.Confirm(questionDeleteSecret) {
		return nil
	}

	if err := b.api.DeleteSecret(ctx, secretID); err != nil {
		if b.isClosed() {
			return nil
		}
		b.report(err, msgDeleteSecretFailed)
		return fmt.Errorf("delete secret %d: %w", secretID, err)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	kept := make([]models.Secret, 0, len(b.secrets))
	for _, s := range b.secrets {
		if s.ID != secretID {
			kept = append(kept, s)
		}
	}
	b.secrets = kept
	delete(b.visible, secretID)
	b.mu.Unlock()

	b.notifier.Success(msgSecretDeleted)
	return nil
}

// ToggleVisibility flips the reveal flag of one secret and returns the new
// value.
func (b *Browser) ToggleVisibility(secretID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible[secretID] = !b.visible[secretID]
	return b.visible[secretID]
}

// IsRevealed reports the reveal flag of one secret.
func (b *Browser) IsRevealed(secretID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible[secretID]
}

// CopySecret puts a loaded secret's value on the clipboard.
func (b *Browser) CopySecret(secretID int64) error {
	b.mu.Lock()
	var (
		value string
		found bool
	)
	for _, s := range b.secrets {
		if s.ID == secretID {
			value, found = s.Value, true
			break
		}
	}
	b.mu.Unlock()

	if !found {
		err := client.Invalid(fmt.Sprintf("No secret with id %d", secretID))
		b.report(err, "")
		return err
	}
	if err := b.clipboard.Write(value); err != nil {
		b.notifier.Error(msgCopyFailed)
		return fmt.Errorf("copy secret %d: %w", secretID, err)
	}
	b.notifier.Success(msgCopied)
	return nil
}

// State returns the current state.
func (b *Browser) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Browser) stateLocked() State {
	if b.hasSelected {
		switch {
		case b.loadingSecrets:
			return StateLoadingSecrets
		case b.secretsLoaded:
			return StateSecretsLoaded
		default:
			return StateProjectSelected
		}
	}
	switch {
	case b.loadingProjects:
		return StateLoadingProjects
	case b.projectsLoaded:
		return StateProjectsLoaded
	default:
		return StateNoProjectsLoaded
	}
}

// Snapshot copies the state for rendering.
func (b *Browser) Snapshot() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := View{
		State:       b.stateLocked(),
		Projects:    append([]models.Project(nil), b.projects...),
		ProjectName: b.projectName,
		SecretKey:   b.secretKey,
		SecretValue: b.secretValue,
	}
	if b.hasSelected {
		sel := b.selected
		v.Selected = &sel
	}
	for _, s := range b.secrets {
		v.Secrets = append(v.Secrets, SecretView{Secret: s, Revealed: b.visible[s.ID]})
	}
	return v
}

// Close discards every response that arrives afterwards.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

func (b *Browser) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// report notifies err unless it is a 401, which the session guard announces.
func (b *Browser) report(err error, fallback string) {
	if errors.Is(err, client.ErrUnauthorized) {
		return
	}
	b.notifier.Error(client.UserMessage(err, fallback))
}

type nopIndicator struct{}

func (nopIndicator) Start(string) {}
func (nopIndicator) Stop()        {}
