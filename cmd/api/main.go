package main

import (
	"context"
	"fmt"
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

	_ "github.com/jvintimilla/logia-api/docs" // Swagger docs
	"github.com/jvintimilla/logia-api/internal/config"
	"github.com/jvintimilla/logia-api/internal/database"
	"github.com/jvintimilla/logia-api/internal/handlers"
	"github.com/jvintimilla/logia-api/internal/jobs"
	"github.com/jvintimilla/logia-api/internal/middleware"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/jvintimilla/logia-api/internal/services"
	"github.com/jvintimilla/logia-api/internal/storage"
	"github.com/jvintimilla/logia-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Logia API
// @version 1.0
// @description REST API for the lodge membership and treasury dashboard

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		logger.Warn("Resend email disabled: RESEND_API_KEY or FROM_EMAIL not set")
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

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, store, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, repos)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, store)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

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
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Redirect root to swagger
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		})

		// Swagger documentation
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Password recovery (public)
		v1.POST("/users/send_recovery_code", h.User.SendRecoveryCode)
		v1.POST("/users/verify_recovery_code", h.User.VerifyRecoveryCode)
		v1.POST("/users/update_password_with_code", h.User.UpdatePasswordWithCode)

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			protected.PATCH("/auth/change_password", h.Auth.ChangePassword)

			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", h.User.Index)
				admin.POST("/users", h.User.Create)
				admin.DELETE("/users/:user_id", h.User.Delete)
				admin.PUT("/users/:user_id/toggle_status", h.User.ToggleStatus)

				admin.PUT("/settings", h.Setting.Update)
				admin.POST("/settings/images/:kind", h.Setting.UploadImage)
			}

			// Admin or profile owner
			protected.GET("/users/:user_id", middleware.RequireAdminOrOwner(), h.User.Show)
			protected.PUT("/users/:user_id", middleware.RequireAdminOrOwner(), h.User.Update)

			// Treasury routes (admin or tesorero may record money movements)
			treasury := protected.Group("")
			treasury.Use(middleware.RequireTreasury())
			{
				treasury.POST("/members", h.Member.Create)
				treasury.PUT("/members/:member_id", h.Member.Update)
				treasury.DELETE("/members/:member_id", h.Member.Delete)
				treasury.PUT("/members/:member_id/toggle_status", h.Member.ToggleStatus)
				treasury.POST("/members/:member_id/photo", h.Member.UploadPhoto)

				treasury.POST("/monthly_payments", h.Dues.Create)
				treasury.POST("/monthly_payments/pronto_pago", h.Dues.GrantProntoPago)
				treasury.DELETE("/monthly_payments/:payment_id", h.Dues.Delete)

				treasury.POST("/extraordinary_fees", h.Extraordinary.Create)
				treasury.POST("/extraordinary_fees/:fee_id/cancel", h.Extraordinary.Cancel)
				treasury.POST("/extraordinary_fees/:fee_id/payments", h.Extraordinary.RecordPayment)

				treasury.POST("/degree_fees", h.Degree.Create)
				treasury.DELETE("/degree_fees/:fee_id", h.Degree.Delete)

				treasury.POST("/expenses", h.Expense.Create)
				treasury.PUT("/expenses/:expense_id", h.Expense.Update)
				treasury.DELETE("/expenses/:expense_id", h.Expense.Delete)
				treasury.POST("/expenses/:expense_id/voucher", h.Expense.UploadVoucher)
			}

			// Read access for every authenticated officer
			protected.GET("/members", h.Member.Index)
			protected.GET("/members/:member_id", h.Member.Show)
			protected.GET("/members/:member_id/photo", h.Member.Photo)
			protected.GET("/members/:member_id/statement_pdf", h.Member.StatementPDF)

			protected.GET("/monthly_payments", h.Dues.Index)
			protected.GET("/monthly_payments/:payment_id", h.Dues.Show)
			protected.GET("/monthly_payments/:payment_id/receipt", h.Dues.DownloadReceipt)
			protected.GET("/monthly_payments/:payment_id/whatsapp_message", h.Dues.WhatsAppMessage)

			protected.GET("/extraordinary_fees", h.Extraordinary.Index)
			protected.GET("/extraordinary_fees/:fee_id", h.Extraordinary.Show)
			protected.GET("/extraordinary_fees/:fee_id/members/:member_id/remaining", h.Extraordinary.MemberRemaining)
			protected.GET("/extraordinary_payments/:payment_id/receipt", h.Extraordinary.DownloadReceipt)
			protected.GET("/extraordinary_payments/:payment_id/whatsapp_message", h.Extraordinary.WhatsAppMessage)

			protected.GET("/degree_fees", h.Degree.Index)
			protected.GET("/degree_fees/:fee_id", h.Degree.Show)
			protected.GET("/degree_fees/:fee_id/receipt", h.Degree.DownloadReceipt)
			protected.GET("/degree_fees/:fee_id/whatsapp_message", h.Degree.WhatsAppMessage)

			protected.GET("/expenses", h.Expense.Index)
			protected.GET("/expenses/:expense_id", h.Expense.Show)
			protected.GET("/expenses/:expense_id/voucher", h.Expense.DownloadVoucher)

			protected.GET("/settings", h.Setting.Show)

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/overview", h.Dashboard.Overview)
				dashboard.GET("/monthly_flow", h.Dashboard.MonthlyFlow)
				dashboard.GET("/income_distribution", h.Dashboard.IncomeDistribution)
				dashboard.GET("/expenses_by_category", h.Dashboard.ExpensesByCategory)
				dashboard.GET("/birthdays", h.Dashboard.Birthdays)
				dashboard.GET("/export", h.Dashboard.Export)
			}

			// Reports
			protected.GET("/reports/dues_csv", h.Report.DuesCSV)
			protected.GET("/reports/arrears_csv", h.Report.ArrearsCSV)
			protected.GET("/reports/expenses_csv", h.Report.ExpensesCSV)

			// Notifications (static route first so "mark_all_as_read" is not
			// matched as :notification_id)
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.Index)
				notifications.POST("/mark_all_as_read", h.Notification.MarkAllAsRead)
				notifications.POST("/:notification_id/mark_as_read", h.Notification.MarkAsRead)
				notifications.GET("/:notification_id", h.Notification.Show)
				notifications.DELETE("/:notification_id", h.Notification.Delete)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, repos *repository.Repositories) {
	// Notify officers of today's birthdays every morning
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking member birthdays...")
		members, err := svcs.Dashboard.GetBirthdayMembers(ctx)
		if err != nil {
			return err
		}
		for _, m := range members {
			if err := svcs.Notification.NotifyAdmins(ctx,
				"Cumpleaños",
				"Hoy es el cumpleaños del H∴ "+m.FullName,
				models.NotificationTypeBirthday,
			); err != nil {
				logger.Error("Error creating birthday notification", "error", err)
			}
		}
		return nil
	})

	// Weekly arrears summary mail to the treasury officers
	worker.ScheduleEvery(7*24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Sending arrears summary...")
		records, err := svcs.Report.ArrearsEntries(ctx)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}

		entries := make([]services.ArrearsEntry, 0, len(records))
		for _, r := range records {
			entries = append(entries, services.ArrearsEntry{
				MemberName: r.MemberName,
				Degree:     r.Degree,
				Phone:      r.Phone,
			})
		}

		if err := svcs.Notification.NotifyAdmins(ctx,
			"Morosidad",
			fmt.Sprintf("%d miembros con cuotas pendientes en el ejercicio actual", len(records)),
			models.NotificationTypeMemberArrears,
		); err != nil {
			logger.Error("Error creating arrears notification", "error", err)
		}

		admins, err := repos.User.FindAdmins(ctx)
		if err != nil {
			return err
		}
		for i := range admins {
			if err := svcs.Email.SendArrearsSummary(ctx, &admins[i], entries); err != nil {
				logger.Error("Error sending arrears summary", "error", err, "user_id", admins[i].ID)
			}
		}
		return nil
	})

	logger.Info("Scheduled recurring jobs")
}
