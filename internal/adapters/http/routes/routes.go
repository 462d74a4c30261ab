package routes

import (
	"ma-helper/internal/adapters/http/handlers"
	"ma-helper/internal/adapters/http/middleware"
	"ma-helper/internal/adapters/persistence/repositories"
	"ma-helper/internal/config"
	"ma-helper/internal/core/domain"
	"ma-helper/internal/core/services"
	"ma-helper/internal/pkg/jwt"
	"ma-helper/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log *logger.Logger) {
	// Initialize repositories
	clientRepo := repositories.NewClientRepository(db)
	maintenanceRepo := repositories.NewMaintenanceRepository(db)
	engineerRepo := repositories.NewEngineerRepository(db)
	memoRepo := repositories.NewTimeMemoRepository(db)

	// Initialize services
	authService := services.NewAuthService(clientRepo, engineerRepo, cfg, log)
	clientService := services.NewClientService(clientRepo, maintenanceRepo, engineerRepo, cfg, log)
	recordService := services.NewRecordService(clientRepo, maintenanceRepo, engineerRepo, log)
	memoService := services.NewMemoService(memoRepo, engineerRepo, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	clientHandler := handlers.NewClientHandler(clientService)
	engineerHandler := handlers.NewEngineerHandler(recordService)
	memoHandler := handlers.NewMemoHandler(memoService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Get("/test", healthHandler.Test)

	setupAuthRoutes(api, authHandler)
	setupClientRoutes(api, clientHandler, cfg)
	setupEngineerRoutes(api, engineerHandler, cfg)
	setupMemoRoutes(api, memoHandler, cfg)
}

// setupAuthRoutes configures login routes (public, rate limited)
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler) {
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/engineer-login", middleware.AuthRateLimiter(), handler.EngineerLogin)
	router.Post("/logout", handler.Logout)
}

// setupClientRoutes configures client document routes
func setupClientRoutes(router fiber.Router, handler *handlers.ClientHandler, cfg *config.Config) {
	protected := middleware.Protected(cfg)
	noCache := middleware.NoCacheHeaders()
	leaderOnly := middleware.RoleMiddleware(cfg, string(domain.RoleLeader))

	router.Get("/client/:id", protected, noCache, handler.GetClient)
	router.Get("/maintenance/:clientId", protected, noCache, handler.GetMaintenance)

	// Admin side
	router.Post("/maintenance/:clientId", protected, leaderOnly, handler.AppendMaintenance)
	router.Get("/clients", protected, leaderOnly, noCache, handler.ListClients)
}

// setupEngineerRoutes configures engineer roster and record routes
func setupEngineerRoutes(router fiber.Router, handler *handlers.EngineerHandler, cfg *config.Config) {
	protected := middleware.Protected(cfg)
	engineersOnly := middleware.KindMiddleware(cfg, jwt.KindEngineer)
	noCache := middleware.NoCacheHeaders()

	// Roster is public (login screen)
	router.Get("/engineers", handler.ListEngineers)

	router.Post("/engineer-record", protected, engineersOnly, handler.AppendRecord)
	router.Get("/engineer-records/:engineerId", protected, engineersOnly, noCache, handler.ListRecords)
	router.Patch("/engineer-record/:recordId", protected, engineersOnly, handler.UpdateRecord)
	router.Delete("/engineer-record/:recordId", protected, engineersOnly, handler.DeleteRecord)
}

// setupMemoRoutes configures engineer time memo routes
func setupMemoRoutes(router fiber.Router, handler *handlers.MemoHandler, cfg *config.Config) {
	protected := middleware.Protected(cfg)
	engineersOnly := middleware.KindMiddleware(cfg, jwt.KindEngineer)

	router.Post("/engineer-memo", protected, engineersOnly, handler.Create)
	router.Get("/engineer-memo/:engineerId", protected, engineersOnly, middleware.NoCacheHeaders(), handler.List)
	router.Patch("/engineer-memo/:id", protected, engineersOnly, handler.Update)
	router.Delete("/engineer-memo/:id", protected, engineersOnly, handler.Delete)
}
