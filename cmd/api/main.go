package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rmedina/segurapp-api/docs" // Swagger docs
	"github.com/rmedina/segurapp-api/internal/config"
	"github.com/rmedina/segurapp-api/internal/database"
	"github.com/rmedina/segurapp-api/internal/handlers"
	"github.com/rmedina/segurapp-api/internal/jobs"
	"github.com/rmedina/segurapp-api/internal/middleware"
	"github.com/rmedina/segurapp-api/internal/repository"
	"github.com/rmedina/segurapp-api/internal/services"
	"github.com/rmedina/segurapp-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Segurapp API
// @version 1.0
// @description REST API for the Segurapp insurance agency back office

// @contact.name API Support
// @contact.email soporte@segurapp.hn

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8081
// @BasePath /api/v1
// @schemes http
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry (GlitchTip) when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn: cfg.SentryDSN,
			// Set TracesSampleRate to 1.0 to capture 100% of transactions for performance monitoring.
			// Set to a lower value (e.g. 0.2) in production if needed.
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, db)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, cfg)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", h.Health.Index)

		// Customers and their vehicles
		customers := v1.Group("/customers")
		{
			customers.GET("", h.Customer.Index)
			customers.POST("", h.Customer.Create)
			customers.GET("/:customer_id", h.Customer.Show)
			customers.POST("/:customer_id/vehicles", h.Customer.AddVehicle)
		}

		// Policies: creation, payments, cancellation, transfer, statement
		policies := v1.Group("/policies")
		{
			policies.GET("", h.Policy.Index)
			policies.POST("", h.Policy.Create)
			policies.GET("/:policy_id", h.Policy.Show)
			policies.POST("/:policy_id/payments", h.Policy.AddPayment)
			policies.POST("/:policy_id/cancel", h.Policy.Cancel)
			policies.POST("/:policy_id/transfer", h.Policy.Transfer)
			policies.GET("/:policy_id/statement", h.Policy.Statement)
		}

		// Cheques: registration and state transitions
		cheques := v1.Group("/cheques")
		{
			cheques.GET("", h.Cheque.Index)
			cheques.POST("", h.Cheque.Create)
			cheques.GET("/:cheque_id", h.Cheque.Show)
			cheques.PUT("/:cheque_id/status", h.Cheque.UpdateStatus)
			cheques.DELETE("/:cheque_id", h.Cheque.Delete)
		}

		// Pricing: per-company quoting and rule management
		companies := v1.Group("/companies/:company_id")
		{
			companies.POST("/quote", h.Pricing.Quote)
			companies.GET("/pricing_rules", h.Pricing.Index)
			companies.POST("/pricing_rules", h.Pricing.Create)
			companies.POST("/pricing_rules/import", h.Pricing.Import)
		}

		// Road service plans
		roadServices := v1.Group("/road_services")
		{
			roadServices.GET("", h.RoadService.Index)
			roadServices.POST("", h.RoadService.Create)
			roadServices.GET("/:service_id", h.RoadService.Show)
			roadServices.PUT("/:service_id", h.RoadService.Update)
			roadServices.GET("/:service_id/price", h.RoadService.Price)
		}

		// Agent commission ledger
		commissions := v1.Group("/commissions")
		{
			commissions.GET("", h.Commission.Index)
			commissions.POST("", h.Commission.Create)
			commissions.POST("/:commission_id/settle", h.Commission.Settle)
			commissions.POST("/:commission_id/cancel", h.Commission.Cancel)
			commissions.POST("/:commission_id/reverse", h.Commission.Reverse)
		}
		v1.GET("/agents/:agent_id/commissions", h.Commission.ByAgent)

		// Notifications
		// Static route first so "mark_all_as_read" is not matched as :notification_id
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", h.Notification.Index)
			notifications.POST("/mark_all_as_read", h.Notification.MarkAllAsRead)
			notifications.POST("/:notification_id/mark_as_read", h.Notification.MarkAsRead)
			notifications.GET("/:notification_id", h.Notification.Show)
			notifications.DELETE("/:notification_id", h.Notification.Delete)
		}

		// Finance side ledgers
		finance := v1.Group("/finance")
		{
			finance.GET("/revenues", h.Finance.Revenues)
			finance.GET("/expenses", h.Finance.Expenses)
		}

		// Audits
		v1.GET("/audits", h.Audit.Index)

		// Background job status
		v1.GET("/jobs/status", h.Job.Status)
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	// Notify about cheques coming due
	worker.ScheduleEvery(time.Duration(cfg.ChequeDueCheckHours)*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking due cheques...")
		return svcs.Cheque.NotifyDueCheques(ctx)
	})

	// Daily reminder for policies approaching end of coverage
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking expiring policies...")
		return svcs.Policy.NotifyExpiringPolicies(ctx, cfg.ExpiryReminderDays)
	})

	logger.Info("Scheduled recurring jobs")
}
