// Package server assembles the development backend: storage, services and
// the HTTP API, with graceful shutdown on cancellation.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/ciphersafe/internal/cryptox"
	"github.com/dmitrijs2005/ciphersafe/internal/dbx"
	"github.com/dmitrijs2005/ciphersafe/internal/logging"
	"github.com/dmitrijs2005/ciphersafe/internal/server/config"
	"github.com/dmitrijs2005/ciphersafe/internal/server/httpapi"
	"github.com/dmitrijs2005/ciphersafe/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ciphersafe/internal/server/services"

	// database/sql drivers selected by dbx.DriverForDSN.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *http.Server
}

// NewApp opens the database, applies migrations and builds the HTTP server.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	driver := dbx.DriverForDSN(c.DatabaseDSN)
	rm, err := repomanager.NewRepositoryManager(driver)
	if err != nil {
		return nil, err
	}

	db, err := dbx.Open(ctx, driver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	sealer, err := cryptox.NewSealer([]byte(c.MasterKey))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	us := services.NewUserService(db, rm, c)
	ps := services.NewProjectService(db, rm)
	ss := services.NewSecretService(db, rm, sealer, logger)

	handlers := httpapi.NewHandlers(us, ps, ss, logger)
	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           httpapi.NewRouter(handlers, []byte(c.SecretKey), c.AllowedOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// Handler exposes the API for in-process use.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

// Run serves until ctx is cancelled or the listener fails, then shuts the
// server down and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.logger.Info(ctx, "Starting server...", "addr", app.config.Addr, "driver", dbx.DriverForDSN(app.config.DatabaseDSN))

	var (
		wg       sync.WaitGroup
		serveErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown failed", "error", err)
	}
	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "closing database", "error", err)
	}
	app.logger.Info(shutdownCtx, "Server stopped")
	return serveErr
}
