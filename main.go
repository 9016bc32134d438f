package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"dating-admin-console/internal/audit"
	"dating-admin-console/internal/client"
	"dating-admin-console/internal/config"
	"dating-admin-console/internal/handlers"
	"dating-admin-console/internal/jobs"
	"dating-admin-console/internal/middleware"
	"dating-admin-console/internal/redis"
)

func main() {
	log := logrus.New()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	// Load configuration
	cfg := config.Load()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	gin.SetMode(cfg.GinMode)

	// Initialize the operator session store
	sessions, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer sessions.Close()
	log.Info("Redis connected successfully")

	// Initialize the moderation audit trail
	var recorder audit.Recorder
	if cfg.DatabaseURL != "" {
		recorder, err = audit.Initialize(cfg.DatabaseURL, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to audit database")
		}
		log.Info("Audit database connected and migrated successfully")
	} else {
		recorder = audit.NewLogRecorder(log)
		log.Warn("DATABASE_URL not set, moderation actions will only be logged")
	}

	// Initialize the fetch client for the remote admin API
	api := client.New(cfg.APIBaseURL, cfg.APITimeout, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(api, sessions, cfg)
	userHandler := handlers.NewUserHandler(api, recorder)
	matchHandler := handlers.NewMatchHandler(api)
	messageHandler := handlers.NewMessageHandler(api)
	reportHandler := handlers.NewReportHandler(api, recorder)
	swipeHandler := handlers.NewSwipeHandler(api)
	analyticsHandler := handlers.NewAnalyticsHandler(api)

	// Keep the dashboard snapshot warm
	if refresher, err := jobs.StartAnalyticsRefresh(cfg.AnalyticsRefreshInterval, analyticsHandler.Refresh, log); err != nil {
		log.WithError(err).Fatal("Failed to start analytics refresh")
	} else if refresher != nil {
		defer refresher.Stop()
	}

	// Setup routes
	router := setupRoutes(cfg, sessions, authHandler, userHandler, matchHandler,
		messageHandler, reportHandler, swipeHandler, analyticsHandler)

	// Start server
	log.Infof("Console starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

func setupRoutes(cfg *config.Config, sessions *redis.Client,
	authHandler *handlers.AuthHandler, userHandler *handlers.UserHandler,
	matchHandler *handlers.MatchHandler, messageHandler *handlers.MessageHandler,
	reportHandler *handlers.ReportHandler, swipeHandler *handlers.SwipeHandler,
	analyticsHandler *handlers.AnalyticsHandler) *gin.Engine {

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())

	// CORS for the browser console
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Health check and metrics
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(cfg, sessions), authHandler.Logout)
		}

		// Operator routes
		ops := v1.Group("")
		ops.Use(middleware.AuthRequired(cfg, sessions))
		{
			users := ops.Group("/users")
			{
				users.GET("", userHandler.GetUsers)
				users.POST("", userHandler.CreateUser)
				users.GET("/blocked", userHandler.GetBlockedUsers)
				users.GET("/:id", userHandler.GetUser)
				users.PUT("/:id", userHandler.UpdateUser)
				users.POST("/:id/block", userHandler.BlockUser)
				users.DELETE("/:id", userHandler.DeleteUser)
			}

			ops.GET("/matches", matchHandler.GetMatches)

			ops.GET("/conversations", messageHandler.GetConversations)
			ops.GET("/conversations/:user1_id/:user2_id", messageHandler.GetThread)

			ops.GET("/reports", reportHandler.GetReports)
			ops.PUT("/reports/:id/status", reportHandler.UpdateReportStatus)

			ops.GET("/swipes", swipeHandler.GetSwipes)

			ops.GET("/analytics", analyticsHandler.GetAnalytics)
		}
	}

	return router
}
