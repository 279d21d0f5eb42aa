package cli

import (
	"context"

	"github.com/dmitrijs2005/ciphersafe/internal/common"
)

// readCredentials prompts for the email unless one is given, then for the
// password. The caller wipes the returned password.
func (a *App) readCredentials(email string) (string, []byte, error) {
	if email == "" {
		var err error
		email, err = getSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return "", nil, err
		}
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register prompts for an email and password and creates an account. On
// success the shell returns to the login screen.
func (a *App) Register(ctx context.Context) error {
	return a.register(ctx, "")
}

func (a *App) register(ctx context.Context, email string) error {
	email, password, err := a.readCredentials(email)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.authService.Register(ctx, email, password)
}

// Login prompts for credentials and exchanges them for a session. On success
// the credential is stored (and persisted when enabled) and the shell
// switches to the dashboard.
func (a *App) Login(ctx context.Context) error {
	return a.login(ctx, "")
}

func (a *App) login(ctx context.Context, email string) error {
	email, password, err := a.readCredentials(email)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.authService.Login(ctx, email, password)
}

// Logout ends the session and returns to the login screen.
func (a *App) Logout(context.Context) error {
	a.guard.Logout()
	return nil
}
