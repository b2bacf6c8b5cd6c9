package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/istafrica-dennw/trucks-app/internal/adapters/storage/localfs"
	"github.com/istafrica-dennw/trucks-app/internal/core/services"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/istafrica-dennw/trucks-app/internal/handlers"
	"github.com/istafrica-dennw/trucks-app/internal/middleware"
	"github.com/istafrica-dennw/trucks-app/internal/platform/config"
	"github.com/istafrica-dennw/trucks-app/internal/repositories/database/pgsql"
	"github.com/istafrica-dennw/trucks-app/internal/utils"
	"github.com/istafrica-dennw/trucks-app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	portssvc "github.com/istafrica-dennw/trucks-app/internal/core/ports/services"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title Trucks App API
// @version 1.0
// @description Back-office API for fleet journeys, payments and reports.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fileStore, err := localfs.NewStore(cfg.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize file store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := dto.RegisterCustomValidations(); err != nil {
		logger.Error("Failed to register custom validations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	rateLimiter := limiter.New(limitermem.NewStore(), rate)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.Default(),
		middleware.RateLimit(rateLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := &portssvc.ServiceContainer{
		Journey:  services.NewJourneyService(repos.JourneyRepo, repos.DriverRepo, repos.TruckRepo, repos.CustomerRepo, repos.SettingsRepo, fileStore),
		Report:   services.NewReportService(repos.JourneyRepo),
		Driver:   services.NewDriverService(repos.DriverRepo),
		Truck:    services.NewTruckService(repos.TruckRepo),
		Customer: services.NewCustomerService(repos.CustomerRepo),
		User:     services.NewUserService(repos.UserRepo),
		Settings: services.NewSettingsService(repos.SettingsRepo),
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, fileStore)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped.")
}

// runMigrations applies pending schema migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
		return nil
	}
	if upErr != nil {
		return upErr
	}
	logger.Info("Database migrations applied successfully.")
	return nil
}
