package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/keyhold/keyhold/internal/tenancy/http"
	"github.com/keyhold/keyhold/internal/tenancy/service"
	"github.com/keyhold/keyhold/internal/tenancy/store"
	"github.com/keyhold/keyhold/internal/tenancy/store/drivers/sqlite"
	"github.com/keyhold/keyhold/pkg/cryptox"
	"github.com/keyhold/keyhold/pkg/jwtx"
	"github.com/keyhold/keyhold/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application wires the tenancy service together: storage, services, HTTP.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer jwtx.Signer

	authService         *service.AuthService
	propertyService     *service.PropertyService
	invitationService   *service.InvitationService
	membershipService   *service.MembershipService
	documentService     *service.DocumentService
	adminService        *service.AdminService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "keyhold",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	key, err := loadOrGenerateSessionKey(cfg.SessionKeyFile, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session key: %w", err)
	}
	app.signer = jwtx.NewSignerEdDSA(key)
	verifier := jwtx.NewVerifierEdDSA(key, cfg.Issuer)

	app.initServices()
	app.initHTTP(verifier)

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("keyhold starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops the housekeeping worker, and
// closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down keyhold...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("keyhold stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:      app.db,
		Signer:     app.signer,
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.propertyService = &service.PropertyService{Store: app.db}
	app.invitationService = &service.InvitationService{
		Store:   app.db,
		BaseURL: app.cfg.BaseURL,
	}
	app.membershipService = &service.MembershipService{Store: app.db}
	app.documentService = &service.DocumentService{Store: app.db}
	app.adminService = &service.AdminService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.InvitationRetention,
	)
}

func (app *Application) initHTTP(verifier jwtx.Verifier) {
	router := httpapi.NewRouter(verifier, BuildVersion, app.db, app.logger)

	router.AuthService = app.authService
	router.PropertyService = app.propertyService
	router.InvitationService = app.invitationService
	router.MembershipService = app.membershipService
	router.DocumentService = app.documentService
	router.AdminService = app.adminService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
