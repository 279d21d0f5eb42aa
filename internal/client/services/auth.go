// Package services contains application services for the CipherSafe client.
// This file defines the authentication flows behind the login and register
// screens.
package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/ciphersafe/internal/client/client"
	"github.com/dmitrijs2005/ciphersafe/internal/client/models"
	"github.com/dmitrijs2005/ciphersafe/internal/client/session"
	"github.com/dmitrijs2005/ciphersafe/internal/client/ui"
	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/dmitrijs2005/ciphersafe/internal/logging"
)

// MinPasswordLength is enforced on registration only.
const MinPasswordLength = 8

const (
	msgLoggedIn           = "Logged in successfully!"
	msgLoginFailed        = "Login failed"
	msgRegistered         = "Registration successful! Please log in."
	msgRegistrationFailed = "Registration failed"
)

// AuthAPI is the part of client.Client used for authentication.
type AuthAPI interface {
	Register(ctx context.Context, creds models.Credentials) (string, error)
	Login(ctx context.Context, creds models.Credentials) (string, error)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for a token, store it and go to the dashboard.
//   - Register: create an account and go to the login screen.
//
// Both report the outcome through the notifier and also return the error.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Register(ctx context.Context, email string, password []byte) error
}

type authService struct {
	api      AuthAPI
	store    *session.Store
	nav      ui.Navigator
	notifier ui.Notifier
	logger   logging.Logger
}

func NewAuthService(api AuthAPI, store *session.Store, nav ui.Navigator, notifier ui.Notifier, logger logging.Logger) AuthService {
	return &authService{api: api, store: store, nav: nav, notifier: notifier, logger: logger}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	creds, err := credentials(email, password, 1)
	if err != nil {
		a.notifier.Error(client.UserMessage(err, msgLoginFailed))
		return err
	}

	token, err := a.api.Login(ctx, creds)
	if err != nil {
		a.notifier.Error(client.UserMessage(err, msgLoginFailed))
		return fmt.Errorf("login: %w", err)
	}

	a.store.Set(token)
	a.logger.Info(ctx, "logged in", "email", creds.Email)
	a.notifier.Success(msgLoggedIn)
	a.nav.Navigate(common.DashboardPath)
	return nil
}

func (a *authService) Register(ctx context.Context, email string, password []byte) error {
	creds, err := credentials(email, password, MinPasswordLength)
	if err != nil {
		a.notifier.Error(client.UserMessage(err, msgRegistrationFailed))
		return err
	}

	if _, err := a.api.Register(ctx, creds); err != nil {
		a.notifier.Error(client.UserMessage(err, msgRegistrationFailed))
		return fmt.Errorf("register: %w", err)
	}

	a.logger.Info(ctx, "registered", "email", creds.Email)
	a.notifier.Success(msgRegistered)
	a.nav.Navigate(common.LoginPath)
	return nil
}

func credentials(email string, password []byte, minLen int) (models.Credentials, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.Credentials{}, client.Invalid("Email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.Credentials{}, client.Invalid("Email is not valid")
	}
	if len(password) == 0 {
		return models.Credentials{}, client.Invalid("Password is required")
	}
	if len(password) < minLen {
		return models.Credentials{}, client.Invalid(fmt.Sprintf("Password must be at least %d characters", minLen))
	}
	return models.Credentials{Email: email, Password: string(password)}, nil
}
