package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	httpapi "github.com/aussiebroadwan/xminds/internal/sandbox/http"
	"github.com/aussiebroadwan/xminds/internal/sandbox/service"
	"github.com/aussiebroadwan/xminds/internal/sandbox/store"
	"github.com/aussiebroadwan/xminds/internal/sandbox/store/drivers/sqlite"
	"github.com/aussiebroadwan/xminds/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application wires the sandbox server together.
type Application struct {
	cfg    Config
	logger *slog.Logger
	pepper string

	db   store.Store
	keys *signingKeys

	authService           *service.AuthService
	bootstrapService      *service.BootstrapService
	catalogService        *service.CatalogService
	ratingService         *service.RatingService
	recommendationService *service.RecommendationService
	housekeeper           *service.Housekeeper

	stopHousekeeping context.CancelFunc
	housekeepingDone chan struct{}

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "xminds-sandbox",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.PepperFile != "" {
		pepper, err := os.ReadFile(cfg.PepperFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read pepper file: %w", err)
		}
		app.pepper = strings.TrimSpace(string(pepper))
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := initSigningKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keys = keys

	app.initServices()

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.bootstrapService.Ensure(ctx); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to bootstrap: %w", err)
	}

	app.initHTTP()
	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Close releases the database of an application that was never Run.
func (app *Application) Close() error { return app.db.Close() }

// Run serves until ctx is cancelled or the listener fails, then shuts the
// application down.
func (app *Application) Run(ctx context.Context) error {
	hkCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
	app.housekeepingDone = make(chan struct{})
	app.stopHousekeeping = stop
	go func() {
		defer close(app.housekeepingDone)
		app.housekeeper.Run(hkCtx)
	}()

	app.logger.Info("sandbox starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database_id", app.cfg.DatabaseID,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		shutdownErr := app.Shutdown()
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return shutdownErr
	case <-ctx.Done():
		app.logger.Info("shutdown requested", "cause", context.Cause(ctx))
	}

	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests for up to the grace period, stops
// housekeeping and closes the database.
func (app *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Warn("grace period exceeded, closing connections", "error", err)
		_ = app.server.Close()
	}

	if app.stopHousekeeping != nil {
		app.stopHousekeeping()
		<-app.housekeepingDone
	}

	if err := app.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	app.logger.Info("sandbox stopped")
	return nil
}

// initDatabase opens the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:      app.db,
		Signer:     app.keys.signer,
		Issuer:     app.cfg.Issuer,
		Pepper:     app.pepper,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:        app.db,
		Pepper:       app.pepper,
		AccountName:  app.cfg.ServiceName,
		Password:     app.cfg.ServicePassword,
		DatabaseID:   app.cfg.DatabaseID,
		DatabaseName: app.cfg.DatabaseName,
		RefreshToken: app.cfg.RefreshToken,
		RefreshTTL:   app.cfg.RefreshTTL,
	}
	app.catalogService = &service.CatalogService{Store: app.db}
	app.ratingService = &service.RatingService{
		Store:              app.db,
		InteractionRatings: app.cfg.InteractionRatings,
	}
	app.recommendationService = &service.RecommendationService{Store: app.db}

	app.housekeeper = service.NewHousekeeper(app.db, app.logger, app.cfg.HousekeepingInterval)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.keys,
		app.keys.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.CatalogService = app.catalogService
	router.RatingService = app.ratingService
	router.RecommendationService = app.recommendationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
