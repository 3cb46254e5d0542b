package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"dynamic-routing/internal/aggregators"
	internalhttp "dynamic-routing/internal/http"
	"dynamic-routing/internal/shared/clocks"
	"dynamic-routing/internal/shared/configs"
	"dynamic-routing/internal/shared/filestorages"
	"dynamic-routing/internal/shared/loggers"
	"dynamic-routing/internal/stores"
	"dynamic-routing/internal/successrates"
)

const appName = "success-rate-router"

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	// closers release storage connections after the server stopped
	closers []io.Closer
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, appName).
		Logger()

	app := &App{
		config:    config,
		appLogger: appLogger,
	}

	// Initialize window store
	windowStore, err := app.newWindowStore(config.Storage)
	if err != nil {
		app.closeStorage()
		return nil, fmt.Errorf("failed to initialize %s window store: %w", config.Storage.Backend, err)
	}
	windowStore = stores.NewInstrumentedWindowStore(windowStore, config.Storage.Backend)

	// Initialize success rate service
	windowAggregator := aggregators.NewWindowAggregator()
	windowUpdater := successrates.NewWindowUpdater(
		windowStore,
		aggregators.NewBlockRotator(),
		windowAggregator,
		clocks.NewRealClock(),
		successrates.RetryPolicy{
			MaxAttempts: config.Update.MaxAttempts,
			BaseBackoff: config.Update.BaseBackoff(),
			MaxBackoff:  config.Update.MaxBackoff(),
		},
	)
	successRateService := successrates.NewSuccessRateService(
		windowStore,
		windowUpdater,
		windowAggregator,
		aggregators.NewScoreCalculator(),
		config.Update.MaxParallelLabels,
	)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	requestTimeout := time.Duration(config.Server.RequestTimeout) * time.Second
	router := internalhttp.NewRouter(successRateService, httpLogger, requestTimeout)

	// Create HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return app, nil
}

// newWindowStore builds the backend selected by storage.backend and registers its
// connections for shutdown.
func (app *App) newWindowStore(config configs.StorageConfig) (stores.WindowStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch config.Backend {
	case stores.BackendMemory:
		return stores.NewMemoryWindowStore(config.Memory.Shards), nil

	case stores.BackendRedis:
		client, err := stores.NewRedisClient(ctx, stores.RedisOptions{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
			PoolSize: config.Redis.PoolSize,
		})
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, client)
		return stores.NewRedisWindowStore(client, config.Redis.KeyPrefix, config.Redis.TTL()), nil

	case stores.BackendSQLite:
		db, err := stores.OpenSQLiteDB(config.SQLite.Path)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, db)
		return stores.NewSQLiteWindowStore(ctx, db)

	case stores.BackendFile:
		fileStorage, err := filestorages.NewFileStorage(config.File.RootDir)
		if err != nil {
			return nil, err
		}
		return stores.NewFileWindowStore(fileStorage), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Backend)
	}
}

// Handler exposes the HTTP handler, mainly for in-process tests.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Str(loggers.FieldBackend, app.config.Storage.Backend).
		Msgf("Starting %s on port %d (log_level=%s, max_attempts=%d, max_parallel_labels=%d)",
			appName,
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Update.MaxAttempts,
			app.config.Update.MaxParallelLabels)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server, in-flight requests finish first
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Release storage connections
	app.closeStorage()
	app.appLogger.Info().Msg("Storage closed")

	return nil
}

func (app *App) closeStorage() {
	for _, closer := range app.closers {
		if err := closer.Close(); err != nil {
			app.appLogger.Warn().Err(err).Msg("failed to close storage")
		}
	}
	app.closers = nil
}
