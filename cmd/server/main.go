package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harusato/meeting-decisions-api/internal/config"
	"github.com/harusato/meeting-decisions-api/internal/database"
	"github.com/harusato/meeting-decisions-api/internal/handlers"
	"github.com/harusato/meeting-decisions-api/internal/repository"
	"github.com/harusato/meeting-decisions-api/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	zapLogger, err := newLogger(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the demo user
	if err := database.SeedDefaultUser(database.GetDB(), cfg.SeedUsername, cfg.SeedPassword); err != nil {
		log.Fatalf("Failed to seed default user: %v", err)
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	decisionRepo := repository.NewDecisionRepository(db)
	actionItemRepo := repository.NewActionItemRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	recordingRepo := repository.NewRecordingRepository(db)

	clock := services.SystemClock()

	// Initialize AI service
	var extractor services.Extractor
	var transcriber services.Transcriber
	if cfg.OpenAIAPIKey != "" {
		aiService := services.NewAIService(cfg.OpenAIAPIKey)
		extractor = aiService
		transcriber = aiService
	}

	// Initialize chat forwarding
	var chatService *services.ChatService
	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		chatID, err := strconv.ParseInt(cfg.TelegramChatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		chatService, err = services.NewChatService(cfg.TelegramToken, chatID, logger)
		if err != nil {
			log.Fatalf("Failed to create chat service: %v", err)
		}
	}

	reminderService := services.NewReminderService(actionItemRepo, notificationRepo, clock, logger)
	authService := services.NewAuthService(userRepo)
	actionItemService := services.NewActionItemService(actionItemRepo, notificationRepo, reminderService, chatService, clock, logger)
	decisionService := services.NewDecisionService(decisionRepo, actionItemService, extractor, clock, logger)
	notificationService := services.NewNotificationService(notificationRepo)
	recordingService := services.NewRecordingService(recordingRepo, transcriber, clock, logger)
	statsService := services.NewStatsService(actionItemRepo, decisionRepo, clock)

	// Bootstrap the reminder scheduler: daily overdue sweep plus re-armed
	// reminders for items that survived a restart.
	if err := reminderService.Initialize(cfg.OverdueSweepTime); err != nil {
		log.Fatalf("Failed to initialize reminder scheduler: %v", err)
	}
	defer reminderService.Shutdown()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	meetingHandler := handlers.NewMeetingHandler(decisionService)
	decisionHandler := handlers.NewDecisionHandler(decisionService)
	actionItemHandler := handlers.NewActionItemHandler(actionItemService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	recordingHandler := handlers.NewRecordingHandler(recordingService, logger)
	statsHandler := handlers.NewStatsHandler(statsService)

	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Meeting Decisions API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
		}

		api.POST("/meetings/extract", meetingHandler.Extract)

		decisions := api.Group("/decisions")
		{
			decisions.GET("", decisionHandler.ListDecisions)
			decisions.GET("/:id", decisionHandler.GetDecision)
		}

		items := api.Group("/action-items")
		{
			items.GET("", actionItemHandler.ListActionItems)
			items.POST("", actionItemHandler.CreateActionItem)
			items.GET("/overdue", actionItemHandler.ListOverdue)
			items.GET("/:id", actionItemHandler.GetActionItem)
			items.PATCH("/:id", actionItemHandler.UpdateActionItem)
			items.POST("/:id/complete", actionItemHandler.CompleteActionItem)
			items.POST("/:id/reopen", actionItemHandler.ReopenActionItem)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
		}

		recordings := api.Group("/recordings")
		{
			recordings.GET("", recordingHandler.ListRecordings)
			recordings.POST("", recordingHandler.CreateRecording)
			recordings.GET("/:id", recordingHandler.GetRecording)
		}

		api.GET("/stats", statsHandler.GetStats)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Infow("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("server shutdown", "error", err)
	}
}

func newLogger(ginMode string) (*zap.Logger, error) {
	if ginMode == gin.ReleaseMode {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
