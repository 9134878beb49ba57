package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"fleetflow/internal/app"
	"fleetflow/internal/auth"
	"fleetflow/internal/config"
	"fleetflow/internal/handler"
	internalRedis "fleetflow/internal/redis"
	"fleetflow/internal/repository/postgres"
	"fleetflow/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	log := newLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.WithError(err).Warn("failed to initialize New Relic")
		} else {
			log.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	log.Info("connected to PostgreSQL")

	// Redis is optional; without it the service loses idempotency caching,
	// dashboard caching and advisory locks, not correctness.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info("connected to Redis")
	}

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg, log)

	// Start server in goroutine.
	go func() {
		log.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}

// newLogger builds the process logger.
func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if parsed, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	}
	return log
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, log *logrus.Logger) *http.Server {
	// Redis stores are nil without a client; dependents handle that.
	var lockStore internalRedis.LockStoreInterface
	var cacheStore internalRedis.CacheStoreInterface
	if redisClient != nil {
		lockStore = internalRedis.NewLockStore(redisClient)
		cacheStore = internalRedis.NewCacheStore(redisClient)
	}

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	maintenanceRepo := postgres.NewMaintenanceRepository(db)
	fuelRepo := postgres.NewFuelRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)
	uow := postgres.NewTxRunner(db)

	// Initialize services.
	authService := auth.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)
	userService := service.NewUserService(userRepo, authService, log)
	coordinator := service.NewCoordinator(uow, tripRepo, maintenanceRepo, lockStore, log)
	vehicleService := service.NewVehicleService(vehicleRepo, uow, log)
	driverService := service.NewDriverService(driverRepo, uow, log)
	fuelService := service.NewFuelService(fuelRepo, vehicleRepo, tripRepo, log)
	analyticsService := service.NewAnalyticsService(analyticsRepo, cacheStore, log)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(userService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService, coordinator)
	driverHandler := handler.NewDriverHandler(driverService)
	tripHandler := handler.NewTripHandler(coordinator)
	maintenanceHandler := handler.NewMaintenanceHandler(coordinator)
	fuelHandler := handler.NewFuelHandler(fuelService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthService:        authService,
		AuthHandler:        authHandler,
		VehicleHandler:     vehicleHandler,
		DriverHandler:      driverHandler,
		TripHandler:        tripHandler,
		MaintenanceHandler: maintenanceHandler,
		FuelHandler:        fuelHandler,
		AnalyticsHandler:   analyticsHandler,
		RedisClient:        redisClient,
		NewRelicApp:        nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
