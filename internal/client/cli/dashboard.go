package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/ciphersafe/internal/client/browser"
	"github.com/dmitrijs2005/ciphersafe/internal/client/guard"
	"github.com/dmitrijs2005/ciphersafe/internal/common"
)

// maxScreenSwitches bounds syncScreen when entering a screen immediately
// navigates elsewhere.
const maxScreenSwitches = 4

// errNotOnDashboard is returned by dashboard commands outside the dashboard.
var errNotOnDashboard = errors.New("not on the dashboard")

// syncScreen applies the router's current path. Leaving the dashboard
// releases the session guard and the browser; entering it activates the
// guard and loads the project list.
func (a *App) syncScreen(ctx context.Context) string {
	for i := 0; i < maxScreenSwitches; i++ {
		target := a.router.Current()
		if target == a.screen {
			break
		}
		if a.screen == common.DashboardPath {
			a.leaveDashboard()
		}
		a.screen = target
		if target == common.DashboardPath {
			a.enterDashboard(ctx)
		}
	}
	return a.screen
}

func (a *App) enterDashboard(ctx context.Context) {
	a.browser = a.newBrowser()
	if a.guard.Activate() != guard.StatusAuthenticated {
		return
	}
	if err := a.browser.LoadProjects(ctx); err == nil {
		renderProjects(a.out, a.browser.Snapshot())
	}
}

func (a *App) leaveDashboard() {
	a.guard.Deactivate()
	if a.browser != nil {
		a.browser.Close()
		a.browser = nil
	}
}

func (a *App) dashboard() (*browser.Browser, error) {
	if a.browser == nil {
		return nil, errNotOnDashboard
	}
	return a.browser, nil
}

// Projects reloads and prints the project list.
func (a *App) Projects(ctx context.Context) error {
	b, err := a.dashboard()
	if err != nil {
		return err
	}
	if err := b.LoadProjects(ctx); err != nil {
		return err
	}
	renderProjects(a.out, b.Snapshot())
	return nil
}

// Select makes the project with the given id current and prints its secrets.
func (a *App) Select(ctx context.Context, arg string) error {
	b, err := a.dashboard()
	if err != nil {
		return err
	}
	id, err := parseID(arg)
	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	if err := b.SelectProjectByID(ctx, id); err != nil {
		return err
	}
	renderSecrets(a.out, b.Snapshot())
	return nil
}

// NewProject prompts for a name and creates a project.
func (a *App) NewProject(ctx context.Context) error {
	b, err := a.dashboard()
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Project name", a.out)
	if err != nil {
		return err
	}
	b.SetProjectName(name)
	if err := b.CreateProject(ctx); err != nil {
		return err
	}
	renderProjects(a.out, b.Snapshot())
	return nil
}

// Secrets prints the selected project's secrets.
func (a *App) Secrets(context.Context) error {
	b, err := a.dashboard()
	if err != nil {
		return err
	}
	renderSecrets(a.out, b.Snapshot())
	return nil
}

// AddSecret prompts for a key and a hidden value and stores the secret in
// the selected project.
func (a *App) AddSecret(ctx context.Context) error {
	b, err := a.dashboard()
	if err != nil {
		return err
	}
	if b.Snapshot().Selected == nil {
		// CreateSecret reports the missing selection.
		return b.CreateSecret(ctx)
	}
	key, err := getSimpleText(a.reader, "Secret key", a.out)
	if err != nil {
		return err
	}
	value, err := getHidden("Secret value: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(value)

	b.SetSecretDraft(key, string(value))
	if err := b.CreateSecret(ctx); err != nil {
		return err
	}
	renderSecrets(a.out, b.Snapshot())
	return nil
}

// Remove deletes a secret after confirmation and reprints the list when
// something was removed.
func (a *App) Remove(ctx context.Context, arg string) error {
	b, err := a.dashboard()
	if err != nil {
		return err
	}
	id, err := parseID(arg)
	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	before := len(b.Snapshot().Secrets)
	if err := b.DeleteSecret(ctx, id); err != nil {
		return err
	}
	if v := b.Snapshot(); len(v.Secrets) != before {
		renderSecrets(a.out, v)
	}
	return nil
}

// Reveal flips the visibility of one secret and reprints the list.
func (a *App) Reveal(_ context.Context, arg string) error {
	b, err := a.dashboard()
	if err != nil {
		return err
	}
	id, err := parseID(arg)
	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	b.ToggleVisibility(id)
	renderSecrets(a.out, b.Snapshot())
	return nil
}

// Copy puts a secret's value on the clipboard.
func (a *App) Copy(_ context.Context, arg string) error {
	b, err := a.dashboard()
	if err != nil {
		return err
	}
	id, err := parseID(arg)
	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	return b.CopySecret(id)
}

// Refresh reloads the projects and, when one is selected, its secrets.
func (a *App) Refresh(ctx context.Context) error {
	b, err := a.dashboard()
	if err != nil {
		return err
	}
	if err := b.LoadProjects(ctx); err != nil {
		return err
	}
	if b.Snapshot().Selected == nil {
		renderProjects(a.out, b.Snapshot())
		return nil
	}
	if err := b.RefreshSecrets(ctx); err != nil {
		return err
	}
	renderSecrets(a.out, b.Snapshot())
	return nil
}

// status is shown in the shell prompt.
func (a *App) status() string {
	parts := []string{a.guard.Status().String()}
	if a.browser != nil {
		if sel := a.browser.Snapshot().Selected; sel != nil {
			parts = append(parts, sel.Name)
		}
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " | "))
}

func renderProjects(w io.Writer, v browser.View) {
	if len(v.Projects) == 0 {
		fmt.Fprintln(w, "No projects yet. Create one with 'newproject'.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME")
	for _, p := range v.Projects {
		marker := ""
		if v.Selected != nil && v.Selected.ID == p.ID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", marker, p.ID, p.Name)
	}
	tw.Flush()
}

func renderSecrets(w io.Writer, v browser.View) {
	if v.Selected == nil {
		fmt.Fprintln(w, "Select a project to see its secrets.")
		return
	}
	if len(v.Secrets) == 0 {
		fmt.Fprintf(w, "No secrets in %s.\n", v.Selected.Name)
		return
	}
	writeSecrets(w, v.Secrets)
}

func writeSecrets(w io.Writer, secrets []browser.SecretView) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKEY\tVALUE")
	for _, s := range secrets {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.ID, s.Key, s.Display())
	}
	tw.Flush()
}
