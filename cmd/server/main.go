package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/config"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/di"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/router"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/secrets"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/shared/observability"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		stdlog.Println("No .env file found")
	}

	cfg := config.New()

	// Initialize structured logger
	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format != "text"

	log := logger.New(logConfig)
	logger.SetGlobal(log)

	log.Info("Starting application", "version", os.Getenv("APP_VERSION"), "env", cfg.Server.Env)

	// Resolve sensitive configuration through the secrets manager so a
	// Vault deployment overrides the plain environment values.
	if err := secrets.Init(log); err != nil {
		log.LogError(err, "Failed to initialize secrets manager")
		os.Exit(1)
	}
	ctx := context.Background()
	cfg.JWT.Secret = secrets.GetSecretWithDefault(ctx, "jwt_secret", cfg.JWT.Secret)
	cfg.SMTP.Password = secrets.GetSecretWithDefault(ctx, "smtp_password", cfg.SMTP.Password)
	cfg.Database.Password = secrets.GetSecretWithDefault(ctx, "db_password", cfg.Database.Password)

	// Tracing and the Prometheus scrape endpoint
	shutdownTracing := observability.SetupTracing("edunet-portal")
	defer shutdownTracing()
	observability.SetupPrometheusMetrics(cfg.Server.MetricsAddr)

	// Initialize database
	db, err := config.NewDB()
	if err != nil {
		log.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.ProfileView{},
	); err != nil {
		log.LogError(err, "Failed to migrate database")
		os.Exit(1)
	}

	// Initialize dependency injection container
	container, err := di.New(db, cfg, log)
	if err != nil {
		log.LogError(err, "Failed to initialize dependency container")
		os.Exit(1)
	}

	// Initialize and setup router
	r := router.New(container)
	r.SetupRoutes()

	// Add OpenAPI validation if schema file is available
	if cfg.OpenAPISchemaPath != "" {
		r.AddOpenAPIValidation(cfg.OpenAPISchemaPath)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r.Engine,
	}

	// Start the server in a goroutine
	go func() {
		log.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogError(err, "Server failed to start")
			os.Exit(1)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal
	<-quit
	log.Info("Shutting down server...")

	// Create a deadline to wait for
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown the server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.LogError(err, "Server forced to shutdown")
	}

	log.Info("Server exited gracefully")
}
