package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	apimiddleware "github.com/cityinfohq/cityinfo-api/internal/api/middleware"
	"github.com/cityinfohq/cityinfo-api/internal/config"
	"github.com/cityinfohq/cityinfo-api/internal/mail"
	"github.com/cityinfohq/cityinfo-api/internal/platform/memstore"
	"github.com/cityinfohq/cityinfo-api/internal/platform/postgres"
	"github.com/cityinfohq/cityinfo-api/internal/service/auth"
	"github.com/cityinfohq/cityinfo-api/internal/service/catalog"
	"github.com/cityinfohq/cityinfo-api/internal/service/tenant"
	"github.com/cityinfohq/cityinfo-api/internal/store"
)

// application holds the wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is set only under the postgres driver.
	db *sql.DB

	catalogService catalog.Service
	jwtService     auth.JWTService
	authorizer     tenant.Authorizer
	metrics        *apimiddleware.Metrics
}

// newApplication builds the dependency graph: stores for the configured
// database driver, the catalog service, token validation, and tenant
// authorization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var (
		cities   store.CityStore
		pois     store.PointOfInterestStore
		txRunner store.TxRunner
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := openDatabase(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		if err := runMigrations(ctx, db, logger); err != nil {
			closeDatabase(db, logger)
			return nil, err
		}
		app.db = db
		cities = postgres.NewPostgresCityStore(db, logger)
		pois = postgres.NewPostgresPointOfInterestStore(db, logger)
		txRunner = postgres.NewTxRunner(db, logger)

	case config.DriverMemory:
		mem := memstore.NewSeeded()
		cities = mem.Cities()
		pois = mem.PointsOfInterest()
		txRunner = mem
		logger.Info("using seeded in-memory store")

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	dispatcher := mail.NewDispatcher(logger)
	dispatcher.Register(mail.NewLocalSink(cfg.Mail.From, cfg.Mail.To, logger))

	catalogService, err := catalog.NewService(cities, pois, txRunner, dispatcher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}
	app.catalogService = catalogService

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService

	authorizer, err := tenant.NewCityAuthorizer(cities, cfg.Auth.CityClaimKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create city authorizer: %w", err)
	}
	app.authorizer = authorizer

	if cfg.Server.MetricsEnabled {
		app.metrics = apimiddleware.NewMetrics()
	}

	return app, nil
}

// openDatabase opens and verifies the PostgreSQL connection.
func openDatabase(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		closeDatabase(db, slog.Default())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func closeDatabase(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
}

// cleanup releases resources during shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
}
