package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	_ "github.com/npadigital/correspondence_app/cmd/docs"
	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
	"github.com/npadigital/correspondence_app/internal/core/services"
	"github.com/npadigital/correspondence_app/internal/handlers"
	"github.com/npadigital/correspondence_app/internal/middleware"
	"github.com/npadigital/correspondence_app/internal/platform/config"
	"github.com/npadigital/correspondence_app/internal/repositories/database/pgsql"
	"github.com/npadigital/correspondence_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Correspondence Lifecycle API
// @version 1.0
// @description Correspondence registration, routing, minutes, delegations and archive access.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		os.Exit(1)
	}

	// Wire repositories and services
	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos)

	// Warm the in-memory snapshots before serving traffic. Both services
	// lazy-load on first read, so a failed warmup is not fatal.
	warmupCtx, cancelWarmup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := serviceContainer.Organization.RefreshHierarchy(warmupCtx); err != nil {
		logger.Warn("Initial hierarchy snapshot load failed", slog.String("error", err.Error()))
	}
	if err := serviceContainer.Correspondence.RefreshSnapshot(warmupCtx); err != nil {
		logger.Warn("Initial correspondence snapshot load failed", slog.String("error", err.Error()))
	}
	cancelWarmup()

	// Periodic snapshot refresh
	if cfg.SnapshotRefreshInterval > 0 {
		go refreshSnapshotsLoop(context.Background(), serviceContainer, cfg.SnapshotRefreshInterval, logger)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending up migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", upErr.Error()))
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// refreshSnapshotsLoop periodically reloads the correspondence and hierarchy
// snapshots so reads stay close to store state even without local writes.
func refreshSnapshotsLoop(ctx context.Context, services *portssvc.ServiceContainer, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refreshCtx, cancel := context.WithTimeout(ctx, interval)
			if err := services.Correspondence.RefreshSnapshot(refreshCtx); err != nil {
				logger.Warn("Periodic correspondence snapshot refresh failed", slog.String("error", err.Error()))
			}
			if err := services.Organization.RefreshHierarchy(refreshCtx); err != nil {
				logger.Warn("Periodic hierarchy snapshot refresh failed", slog.String("error", err.Error()))
			}
			cancel()
		}
	}
}
