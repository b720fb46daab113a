/**
 * @description
 * API Route definitions.
 * Sets up the router groups and assigns handlers.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/api/handlers
 * - backend/internal/api/middleware
 * - backend/internal/services
 * - backend/internal/yahoo
 */

package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stocksense-project/backend/internal/api/handlers"
	"github.com/stocksense-project/backend/internal/api/middleware"
	"github.com/stocksense-project/backend/internal/cache"
	"github.com/stocksense-project/backend/internal/config"
	"github.com/stocksense-project/backend/internal/logger"
	"github.com/stocksense-project/backend/internal/sentiment"
	"github.com/stocksense-project/backend/internal/services"
	"github.com/stocksense-project/backend/internal/yahoo"
	"gorm.io/gorm"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	// 1. Initialize Middleware
	if err := middleware.InitAuthMiddleware(cfg); err != nil {
		logger.Fatal("Failed to init auth middleware: %v", err)
	}

	// 2. Initialize Services
	yahooClient := yahoo.NewClient(cfg)
	stockCache := cache.NewRedisCache(rdb, "stocks")
	scorer := sentiment.NewScorer()

	stockService := services.NewStockService(db, stockCache, yahooClient, cfg.Worker.QuoteCacheTTL)
	sentimentService := services.NewSentimentService(db, scorer, yahooClient, stockService)
	recommendationService := services.NewRecommendationService(db, stockService, sentimentService)
	watchlistService := services.NewWatchlistService(db)
	notificationService := services.NewNotificationService(db, watchlistService)

	// 3. Initialize Handlers
	authHandler := handlers.NewAuthHandler(db)
	stockHandler := handlers.NewStockHandler(stockService)
	sentimentHandler := handlers.NewSentimentHandler(sentimentService)
	recommendationHandler := handlers.NewRecommendationHandler(stockService, recommendationService)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistService, stockService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	liveHandler := handlers.NewLiveHandler(yahooClient)

	// 4. Define Routes
	apiGroup := app.Group("/api")

	// Public Routes
	apiGroup.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := apiGroup.Group("/v1")

	// Auth Routes
	auth := v1.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/profile", middleware.Protected(), authHandler.GetProfile)
	auth.Put("/profile", middleware.Protected(), authHandler.UpdateProfile)

	// Stock Routes (Protected)
	stocks := v1.Group("/stocks", middleware.Protected())
	stocks.Get("/", stockHandler.ListStocks)
	stocks.Post("/", middleware.AdminRequired(), stockHandler.CreateStock)
	stocks.Post("/search", stockHandler.SearchStock)
	stocks.Get("/:symbol", stockHandler.GetStock)
	stocks.Put("/:id", middleware.AdminRequired(), stockHandler.UpdateStock)
	stocks.Delete("/:id", middleware.AdminRequired(), stockHandler.DeleteStock)
	stocks.Post("/:id/refresh", stockHandler.RefreshStockPrice)

	// Watchlist Routes (Protected)
	watchlist := v1.Group("/watchlist", middleware.Protected())
	watchlist.Get("/", watchlistHandler.GetWatchlist)
	watchlist.Post("/:stock_id", watchlistHandler.AddToWatchlist)
	watchlist.Delete("/:stock_id", watchlistHandler.RemoveFromWatchlist)

	// Sentiment Routes (Protected)
	sentimentGroup := v1.Group("/sentiment", middleware.Protected())
	sentimentGroup.Post("/analyze", sentimentHandler.AnalyzeText)
	sentimentGroup.Post("/", middleware.AnalystRequired(), sentimentHandler.AddRecord)
	sentimentGroup.Get("/stock/:symbol", sentimentHandler.GetRecords)
	sentimentGroup.Get("/stock/:symbol/aggregate", sentimentHandler.GetAggregate)
	sentimentGroup.Post("/stock/:symbol/refresh", sentimentHandler.RefreshNews)
	sentimentGroup.Get("/stock/:symbol/live", sentimentHandler.GetLiveSentiment)
	sentimentGroup.Get("/stock/:symbol/sources/:source", sentimentHandler.GetRecordsBySource)

	// Recommendation Routes (Protected)
	recommendations := v1.Group("/recommendations", middleware.Protected())
	recommendations.Get("/top", recommendationHandler.GetTop)
	recommendations.Get("/stock/:symbol", recommendationHandler.GetForStock)
	recommendations.Get("/history/:stock_id", recommendationHandler.GetHistory)

	// Notification Routes (Protected)
	notifications := v1.Group("/notifications", middleware.Protected())
	notifications.Get("/", notificationHandler.GetNotifications)
	notifications.Get("/unread-count", notificationHandler.GetUnreadCount)
	notifications.Post("/read-all", notificationHandler.MarkAllAsRead)
	notifications.Post("/:id/read", notificationHandler.MarkAsRead)
	notifications.Delete("/:id", notificationHandler.DeleteNotification)

	// Live Market Data Routes (Protected)
	live := v1.Group("/live", middleware.Protected())
	live.Post("/search", liveHandler.SearchSymbol)
	live.Get("/details/:symbol", liveHandler.GetDetails)
	live.Get("/history/:symbol", liveHandler.GetHistory)
}
