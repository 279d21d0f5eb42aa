package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/ciphersafe/internal/client/browser"
	"github.com/dmitrijs2005/ciphersafe/internal/client/client"
	"github.com/dmitrijs2005/ciphersafe/internal/client/config"
	"github.com/dmitrijs2005/ciphersafe/internal/client/guard"
	"github.com/dmitrijs2005/ciphersafe/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ciphersafe/internal/client/services"
	"github.com/dmitrijs2005/ciphersafe/internal/client/session"
	"github.com/dmitrijs2005/ciphersafe/internal/client/ui"
	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/dmitrijs2005/ciphersafe/internal/filex"
	"github.com/dmitrijs2005/ciphersafe/internal/logging"
	"github.com/fatih/color"
)

// App holds the wired client: the credential store and its persistence, the
// HTTP API behind the authorizing transport, and the terminal collaborators.
type App struct {
	config *config.Config
	logger logging.Logger

	reader *bufio.Reader
	out    io.Writer

	db        *sql.DB
	store     *session.Store
	persister *session.Persister
	router    *Router
	guard     *guard.Guard

	api         client.Client
	authService services.AuthService

	notifier  ui.Notifier
	confirmer ui.Confirmer
	clipboard ui.Clipboard
	indicator ui.Indicator

	// browser is the dashboard's state while the dashboard screen is shown.
	browser *browser.Browser
	screen  string
}

// NewApp wires the client from cfg. Prompts read from in; output and
// notifications go to out, logs and the spinner to errOut.
//
// When cfg.PersistSession is set the local database is opened (and migrated)
// and the stored credential is loaded before NewApp returns.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	logger := logging.NewTextLogger(errOut, cfg.LogLevel)

	a := &App{
		config:    cfg,
		logger:    logger,
		reader:    bufio.NewReader(in),
		out:       out,
		store:     session.NewStore(),
		router:    NewRouter(common.LoginPath),
		notifier:  ui.NewTerminalNotifier(out, !color.NoColor),
		clipboard: ui.SystemClipboard{},
		indicator: ui.NewSpinnerIndicator(errOut),
	}
	a.confirmer = ui.NewPromptConfirmer(a.reader, out)
	a.guard = guard.New(a.store, a.router, a.notifier, a.indicator)

	transport := client.NewAuthTransport(http.DefaultTransport, a.store, func(bool) {
		a.router.Navigate(common.LoginPath)
	}, logger)
	api, err := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, transport)
	if err != nil {
		return nil, err
	}
	a.api = api
	a.authService = services.NewAuthService(api, a.store, a.router, a.notifier, logger)

	if cfg.PersistSession {
		if err := a.openSession(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}
	a.guard.MarkHydrated()

	if a.store.Authenticated() {
		a.router.Navigate(common.DashboardPath)
	}
	return a, nil
}

func (a *App) openSession(ctx context.Context) error {
	if _, err := filex.EnsurePrivateDir(a.config.DataDir); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := client.InitDatabase(ctx, a.config.DatabasePath())
	if err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}
	a.db = db

	a.persister = session.NewPersister(a.store, metadata.NewSQLiteRepository(db), a.logger)
	if err := a.persister.Hydrate(ctx); err != nil {
		return err
	}
	return nil
}

// newBrowser creates dashboard state bound to the app's collaborators.
func (a *App) newBrowser() *browser.Browser {
	return browser.New(browser.Deps{
		API:       a.api,
		Notifier:  a.notifier,
		Confirmer: a.confirmer,
		Clipboard: a.clipboard,
		Indicator: a.indicator,
		Logger:    a.logger,
	})
}

// Close stops session persistence and releases the local database.
func (a *App) Close() {
	if a.browser != nil {
		a.browser.Close()
		a.browser = nil
	}
	a.guard.Deactivate()
	if a.persister != nil {
		a.persister.Stop()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing database", "error", err)
		}
		a.db = nil
	}
}
