/**
 * @description
 * Recommendation API Handlers.
 * Serves per-stock recommendations, the ranked top list and history.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stocksense-project/backend/internal/logger"
	"github.com/stocksense-project/backend/internal/services"
)

// RecommendationHandler handles recommendation-related requests
type RecommendationHandler struct {
	stockService          *services.StockService
	recommendationService *services.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(stockService *services.StockService, recommendationService *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		stockService:          stockService,
		recommendationService: recommendationService,
	}
}

// GetForStock returns the current recommendation for a stock, reusing a
// fresh stored one when available
// GET /api/v1/recommendations/stock/:symbol?days=7
func (h *RecommendationHandler) GetForStock(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	days := c.QueryInt("days", 7)

	stock, err := h.stockService.GetBySymbol(c.Context(), symbol)
	if err != nil {
		if errors.Is(err, services.ErrStockNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Stock not found"})
		}
		logger.Error("RecommendationHandler: Failed to load stock %s: %v", symbol, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch stock",
		})
	}

	result, err := h.recommendationService.ForStock(c.Context(), stock, days)
	if err != nil {
		logger.Error("RecommendationHandler: Failed to recommend for %s: %v", symbol, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate recommendation",
		})
	}
	if result == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Recommendation unavailable for this stock right now",
		})
	}

	return c.JSON(result)
}

// GetTop returns the ranked top recommendations across all tracked stocks
// GET /api/v1/recommendations/top?limit=5
func (h *RecommendationHandler) GetTop(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	if limit <= 0 || limit > 20 {
		limit = 5
	}

	entries, err := h.recommendationService.Top(c.Context(), limit)
	if err != nil {
		logger.Error("RecommendationHandler: Failed to build top list: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build top recommendations",
		})
	}

	return c.JSON(fiber.Map{
		"recommendations": entries,
		"count":           len(entries),
	})
}

// GetHistory returns stored recommendation snapshots for a stock
// GET /api/v1/recommendations/history/:stock_id?days=30
func (h *RecommendationHandler) GetHistory(c *fiber.Ctx) error {
	stockID, err := uuid.Parse(c.Params("stock_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid stock ID"})
	}
	days := c.QueryInt("days", 30)

	history, err := h.recommendationService.History(c.Context(), stockID, days)
	if err != nil {
		logger.Error("RecommendationHandler: Failed to load history for %s: %v", stockID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch recommendation history",
		})
	}

	return c.JSON(fiber.Map{
		"stock_id": stockID,
		"history":  history,
		"count":    len(history),
	})
}
