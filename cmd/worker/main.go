/**
 * @description
 * Worker Service Entry Point.
 * Responsible for background tasks:
 * 1. Refreshing stored sentiment from live news for every tracked stock.
 * 2. Regenerating stale recommendations and notifying watchers.
 * 3. Refreshing cached stock prices.
 *
 * @dependencies
 * - backend/internal/config
 * - backend/internal/db
 * - backend/internal/services
 * - backend/internal/yahoo
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stocksense-project/backend/internal/cache"
	"github.com/stocksense-project/backend/internal/config"
	"github.com/stocksense-project/backend/internal/db"
	"github.com/stocksense-project/backend/internal/logger"
	"github.com/stocksense-project/backend/internal/models"
	"github.com/stocksense-project/backend/internal/sentiment"
	"github.com/stocksense-project/backend/internal/services"
	"github.com/stocksense-project/backend/internal/yahoo"
)

// notificationRetention is how long read notifications are kept before pruning
const notificationRetention = 30 * 24 * time.Hour

func main() {
	logger.Info("🔥 Starting StockSense Worker...")

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	// 2. Connect DBs
	pgDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		logger.Fatal("Postgres connection failed: %v", err)
	}

	redisClient, err := db.ConnectRedis(cfg)
	if err != nil {
		logger.Fatal("Redis connection failed: %v", err)
	}

	// 3. Initialize Services
	yahooClient := yahoo.NewClient(cfg)
	stockCache := cache.NewRedisCache(redisClient, "stocks")
	scorer := sentiment.NewScorer()

	stockService := services.NewStockService(pgDB, stockCache, yahooClient, cfg.Worker.QuoteCacheTTL)
	sentimentService := services.NewSentimentService(pgDB, scorer, yahooClient, stockService)
	recommendationService := services.NewRecommendationService(pgDB, stockService, sentimentService)
	watchlistService := services.NewWatchlistService(pgDB)
	notificationService := services.NewNotificationService(pgDB, watchlistService)

	w := &worker{
		stocks:          stockService,
		sentiments:      sentimentService,
		recommendations: recommendationService,
		notifications:   notificationService,
	}

	// 4. Context with Cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Refresh Loop
	go func() {
		ticker := time.NewTicker(cfg.Worker.RefreshInterval)
		defer ticker.Stop()

		// Initial run
		w.refreshAll(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.refreshAll(ctx)
			}
		}
	}()

	// 6. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()

	time.Sleep(1 * time.Second) // Give in-flight requests time to finish
	logger.Info("Worker exited.")
}

type worker struct {
	stocks          *services.StockService
	sentiments      *services.SentimentService
	recommendations *services.RecommendationService
	notifications   *services.NotificationService
}

// refreshAll runs one full refresh cycle over the tracked universe
func (w *worker) refreshAll(ctx context.Context) {
	logger.Info("🔄 Refreshing tracked stocks...")

	stocks, err := w.stocks.All(ctx)
	if err != nil {
		logger.Error("Failed to list stocks: %v", err)
		return
	}
	if len(stocks) == 0 {
		logger.Info("No stocks tracked yet.")
		return
	}

	for i := range stocks {
		if ctx.Err() != nil {
			return
		}
		w.refreshStock(ctx, &stocks[i])
	}

	if pruned, err := w.notifications.DeleteOlderThan(ctx, notificationRetention); err == nil && pruned > 0 {
		logger.Info("Pruned %d old notifications", pruned)
	}

	logger.Info("✅ Refresh cycle complete (%d stocks).", len(stocks))
}

// refreshStock updates one stock's price, sentiment and recommendation
func (w *worker) refreshStock(ctx context.Context, stock *models.Stock) {
	// 1. Price
	if _, err := w.stocks.RefreshPrice(ctx, stock.ID); err != nil {
		logger.Error("Price refresh failed for %s: %v", stock.Symbol, err)
	}

	// 2. Sentiment from live news
	if _, err := w.sentiments.RefreshNews(ctx, stock.Symbol, 0, true); err != nil {
		logger.Error("News refresh failed for %s: %v", stock.Symbol, err)
	}

	// 3. Recommendation, reusing a fresh one when present
	result, err := w.recommendations.ForStock(ctx, stock, 7)
	if err != nil {
		logger.Error("Recommendation failed for %s: %v", stock.Symbol, err)
		return
	}
	if result == nil || result.Cached {
		return
	}

	// 4. Notify watchers about fresh non-hold calls
	if result.Recommendation.Type == models.RecommendationHold {
		return
	}
	notified, err := w.notifications.NotifyWatchers(ctx, stock, result.Recommendation)
	if err != nil {
		logger.Error("Failed to notify watchers for %s: %v", stock.Symbol, err)
		return
	}
	if notified > 0 {
		logger.Info("Notified %d watchers about %s %s", notified, stock.Symbol, result.Recommendation.Type)
	}
}
