package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/charityfund/internal/handlers"
	"github.com/alimgiray/charityfund/internal/middleware"
	"github.com/alimgiray/charityfund/internal/repositories"
	"github.com/alimgiray/charityfund/internal/services"
	"github.com/alimgiray/charityfund/pkg/config"
	"github.com/alimgiray/charityfund/pkg/database"
	"github.com/alimgiray/charityfund/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	if err := database.Init(cfg.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	ledger := repositories.NewLedger(database.DB)
	projectRepo := repositories.NewCharityProjectRepository()
	donationRepo := repositories.NewDonationRepository()
	userRepo := repositories.NewUserRepository(database.DB)

	investingService := services.NewInvestingService(ledger, projectRepo, donationRepo, cfg.Investing)
	projectService := services.NewCharityProjectService(ledger, projectRepo, investingService)
	donationService := services.NewDonationService(ledger, donationRepo, investingService)
	reportService := services.NewReportService(ledger, projectRepo, investingService)
	userService := services.NewUserService(userRepo, cfg.Admin)
	githubService := services.NewGitHubService(cfg.GitHub)

	sessions := middleware.NewSessions(cfg.Session, userService)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.Use(sessions.Middleware())

	setupRoutes(router, ledger, projectService, donationService, reportService, userService, githubService, sessions)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server stopped")
}

func setupRoutes(
	router *gin.Engine,
	ledger *repositories.Ledger,
	projectService *services.CharityProjectService,
	donationService *services.DonationService,
	reportService *services.ReportService,
	userService *services.UserService,
	githubService *services.GitHubService,
	sessions *middleware.Sessions,
) {
	handlers.RegisterRoutes(router, handlers.Handlers{
		Projects:  handlers.NewProjectHandler(projectService),
		Donations: handlers.NewDonationHandler(donationService),
		Reports:   handlers.NewReportHandler(reportService),
		Auth:      handlers.NewAuthHandler(userService, githubService, sessions),
		Health:    handlers.NewHealthHandler(ledger),
	})
}

// requestLogger writes one structured line per request
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(map[string]interface{}{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
