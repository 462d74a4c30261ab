package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ma-helper/internal/adapters/http/middleware"
	"ma-helper/internal/adapters/http/routes"
	"ma-helper/internal/adapters/persistence/models"
	"ma-helper/internal/config"
	"ma-helper/internal/core/services"
	"ma-helper/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"

	_ "ma-helper/docs" // Swagger docs
)

// @title MA Helper API
// @version 1.0
// @description Maintenance history tracker for clients and field engineers

// @contact.name API Support

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", true).Fatal().Err(err).Msg("❌ Failed to load configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.IsDev())
	if cfg.EnvFileMissing() {
		log.Warn().Msg("⚠️ No .env file found, using environment variables")
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to connect to database")
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to auto migrate")
	}
	log.Info().Msg("✅ Database migration completed")

	// Seed demo clients and engineers
	if cfg.Seed.OnStart {
		if err := config.NewSeeder(db, log, cfg.Security.BcryptCost).Run(context.Background()); err != nil {
			log.Warn().Err(err).Msg("⚠️ Failed to seed demo data")
		}
	}

	// Keep-alive self ping
	if cfg.Ping.Enabled {
		cronService := services.NewCronService(cfg, log)
		if err := cronService.Start(); err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to start cron service")
		}
		defer cronService.Stop()
	}

	// Create Fiber app
	app := fiber.New(middleware.FiberConfig(cfg, log))

	// Setup middlewares
	middleware.Setup(app, cfg, log)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, log)

	// Graceful shutdown
	go gracefulShutdown(app, log)

	// Start server
	log.Info().Str("port", cfg.Port).Str("mode", cfg.AppMode).Msg("🚀 Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("❌ Failed to start server")
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("❌ Error during shutdown")
	}
	log.Info().Msg("✅ Server stopped gracefully")
}
