package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ticketportal/internal/app"
	"ticketportal/internal/backend"
	"ticketportal/internal/config"
	"ticketportal/internal/handler"
	internalRedis "ticketportal/internal/redis"
	"ticketportal/internal/repository/postgres"
	"ticketportal/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

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
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// The audit database is optional: the result pages work without it.
	var db *sql.DB
	if cfg.Portal.AuditEnabled {
		db, err = app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()
		log.Println("Connected to PostgreSQL")
	}

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting portal on port %s (backend=%s)", cfg.Server.Port, cfg.Backend.BaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Remote ticketing API.
	api := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.APIKey, cfg.Backend.Timeout)

	// Initialize Redis stores.
	cacheStore := internalRedis.NewCacheStore(redisClient, cfg.Portal.ArtistCacheTTL)
	lockStore := internalRedis.NewLockStore(redisClient)
	limiter := internalRedis.NewForgotPasswordLimiter(redisClient, cfg.Portal.ForgotPasswordLimit, cfg.Portal.ForgotPasswordWindow)

	// Initialize services.
	var auditService *service.AuditService
	var recorder service.OutcomeRecorder
	if db != nil {
		auditService = service.NewAuditService(postgres.NewPaymentOutcomeRepository(db), cfg.Auth.AdminRole)
		recorder = auditService
	}

	notificationService := service.NewNotificationService()
	resolverService := service.NewResolverService(api, recorder)
	favoritesService := service.NewFavoritesService(api, notificationService)
	artistService := service.NewArtistService(api, cacheStore)
	recoveryService := service.NewRecoveryService(api, limiter, notificationService)
	adminEventService := service.NewAdminEventService(api, lockStore, cacheStore, notificationService, cfg.Portal.DeletionMarkerTTL)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		PaymentHandler:   handler.NewPaymentHandler(resolverService),
		FavoritesHandler: handler.NewFavoritesHandler(favoritesService),
		ArtistHandler:    handler.NewArtistHandler(artistService),
		AuthHandler:      handler.NewAuthHandler(recoveryService),
		AdminHandler:     handler.NewAdminHandler(adminEventService, auditService),
		RedisClient:      redisClient,
		NewRelicApp:      nrApp,
		AllowedOrigin:    cfg.Server.AllowedOrigin,
		JWTSecret:        cfg.Auth.JWTSecret,
		AdminRole:        cfg.Auth.AdminRole,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
