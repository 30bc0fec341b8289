package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wishlist-service/internal/clients"
	"wishlist-service/internal/config"
	"wishlist-service/internal/events"
	"wishlist-service/internal/handlers"
	"wishlist-service/internal/middleware"
	"wishlist-service/internal/models"
	"wishlist-service/internal/observability"
	"wishlist-service/internal/repository"
	"wishlist-service/internal/services"
	"wishlist-service/internal/workers"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg := config.New()
	if cfg.Environment != "production" {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize database
	db, err := initDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	// Auto-migrate models
	if err := autoMigrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	// Initialize Redis client (optional - graceful degradation if Redis unavailable)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Failed to parse Redis URL, continuing without caching")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.WithError(err).Warn("Failed to connect to Redis, continuing without caching")
				redisClient = nil
			} else {
				logger.Info("Connected to Redis for caching")
			}
		}
	} else {
		logger.Info("REDIS_URL not configured, caching disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, redisClient)
	wishlistRepo := repository.NewWishlistRepository(db)
	itemRepo := repository.NewItemRepository(db)
	friendRepo := repository.NewFriendRepository(db)

	// Initialize NATS events publisher (optional - mutations proceed without it)
	var publisher services.EventPublisher
	natsPublisher, err := events.NewPublisher(logger)
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize events publisher (entity-change events disabled)")
	} else {
		publisher = natsPublisher
		logger.Info("Events publisher initialized")
	}

	// Initialize push notification client
	pushClient := clients.NewPushClient()

	// Initialize services
	userService := services.NewUserService(userRepo, friendRepo)
	friendService := services.NewFriendService(friendRepo, userRepo, pushClient, publisher, logger)
	wishlistService := services.NewWishlistService(wishlistRepo, itemRepo, friendRepo, publisher, logger)
	itemService := services.NewItemService(itemRepo, wishlistService, publisher, logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	userHandler := handlers.NewUserHandler(userService)
	friendHandler := handlers.NewFriendHandler(friendService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	itemHandler := handlers.NewItemHandler(itemService)

	// Initialize background worker
	tokenWorker := workers.NewShareTokenWorker(wishlistRepo, 1*time.Hour, logger)

	// Initialize Prometheus metrics
	metrics := observability.NewMetrics("wishlist_service")

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Rate limiting middleware (Redis-backed when available)
	if redisClient != nil {
		router.Use(middleware.RedisRateLimit(redisClient))
		logger.Info("Redis-based rate limiting enabled")
	} else {
		router.Use(middleware.RateLimit())
		logger.Info("In-memory rate limiting enabled (Redis unavailable)")
	}

	// Observability middleware
	router.Use(metrics.Middleware())

	// CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health endpoints
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)

	// Metrics endpoint
	router.GET("/metrics", observability.Handler())

	// Bearer-token auth for everything under /api/v1. The verifier is an
	// injected capability; swap it out when the identity provider changes.
	verifier := middleware.NewHMACVerifier(cfg.JWTSecret)
	auth := middleware.AuthMiddleware(verifier, userService)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(auth)
	{
		// Profile
		v1.GET("/me", userHandler.GetMe)
		v1.PATCH("/me", userHandler.UpdateMe)

		// Users
		users := v1.Group("/users")
		{
			users.GET("/search", userHandler.SearchUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("/:id/block", friendHandler.BlockUser)
			users.DELETE("/:id/block", friendHandler.UnblockUser)
		}

		// Friends
		friends := v1.Group("/friends")
		{
			friends.GET("", friendHandler.ListFriends)
			friends.GET("/requests", friendHandler.ListRequests)
			friends.POST("/requests", friendHandler.SendRequest)
			friends.POST("/requests/:id/accept", friendHandler.AcceptRequest)
			friends.POST("/requests/:id/reject", friendHandler.RejectRequest)
			friends.DELETE("/requests/:id", friendHandler.CancelRequest)
		}

		// Wishlists
		wishlists := v1.Group("/wishlists")
		{
			wishlists.GET("", wishlistHandler.ListWishlists)
			wishlists.POST("", wishlistHandler.CreateWishlist)
			wishlists.GET("/:id", wishlistHandler.GetWishlist)
			wishlists.PUT("/:id", wishlistHandler.UpdateWishlist)
			wishlists.DELETE("/:id", wishlistHandler.DeleteWishlist)
			wishlists.POST("/:id/share-token", wishlistHandler.IssueShareToken)
			wishlists.POST("/:id/collaborators", wishlistHandler.AddCollaborator)
			wishlists.DELETE("/:id/collaborators/:userId", wishlistHandler.RemoveCollaborator)
			wishlists.POST("/:id/leave", wishlistHandler.LeaveWishlist)
			wishlists.POST("/:id/items", itemHandler.CreateItem)
		}

		// Shared wishlist resolution
		v1.GET("/shared/:token", wishlistHandler.ResolveShareToken)

		// Items
		items := v1.Group("/items")
		{
			items.PUT("/:itemId", itemHandler.UpdateItem)
			items.DELETE("/:itemId", itemHandler.DeleteItem)
			items.POST("/:itemId/purchase", itemHandler.MarkPurchased)
			items.POST("/:itemId/restore", itemHandler.RestoreItem)
			items.POST("/:itemId/reserve", itemHandler.ReserveItem)
			items.DELETE("/:itemId/reserve", itemHandler.UnreserveItem)
			items.POST("/:itemId/copy", itemHandler.CopyItem)
		}
	}

	// Start background worker
	tokenWorker.Start()

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		logger.WithField("port", cfg.Port).Info("Starting wishlist-service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down wishlist-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tokenWorker.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	if natsPublisher != nil {
		natsPublisher.Close()
	}

	logger.Info("Wishlist service stopped")
}

func initDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Wishlist{},
		&models.Collaborator{},
		&models.Item{},
		&models.Reservation{},
		&models.Friendship{},
		&models.Block{},
	)
}
