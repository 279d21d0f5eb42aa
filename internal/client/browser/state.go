package browser

import "github.com/dmitrijs2005/ciphersafe/internal/client/models"

type State int

const (
	StateNoProjectsLoaded State = iota
	StateLoadingProjects
	StateProjectsLoaded
	StateProjectSelected
	StateLoadingSecrets
	StateSecretsLoaded
)

func (s State) String() string {
	switch s {
	case StateNoProjectsLoaded:
		return "NoProjectsLoaded"
	case StateLoadingProjects:
		return "LoadingProjects"
	case StateProjectsLoaded:
		return "ProjectsLoaded"
	case StateProjectSelected:
		return "ProjectSelected"
	case StateLoadingSecrets:
		return "LoadingSecrets"
	case StateSecretsLoaded:
		return "SecretsLoaded"
	default:
		return "Unknown"
	}
}

// SecretView is a secret together with its reveal flag.
type SecretView struct {
	models.Secret
	Revealed bool
}

// Display renders the value according to the reveal flag.
func (v SecretView) Display() string {
	return v.Secret.Display(v.Revealed)
}

// View is a copy of the browser state for rendering.
type View struct {
	State    State
	Projects []models.Project
	// Selected is nil when no project is selected.
	Selected *models.Project
	Secrets  []SecretView

	ProjectName string
	SecretKey   string
	SecretValue string
}
