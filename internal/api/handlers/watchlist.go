/**
 * @description
 * Watchlist API Handlers.
 * Handles per-user stock tracking.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 * - backend/internal/api/middleware
 */

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stocksense-project/backend/internal/api/middleware"
	"github.com/stocksense-project/backend/internal/logger"
	"github.com/stocksense-project/backend/internal/services"
)

// WatchlistHandler handles watchlist-related requests
type WatchlistHandler struct {
	watchlistService *services.WatchlistService
	stockService     *services.StockService
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(watchlistService *services.WatchlistService, stockService *services.StockService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
		stockService:     stockService,
	}
}

// GetWatchlist returns the user's watchlist with stock details
// GET /api/v1/watchlist
func (h *WatchlistHandler) GetWatchlist(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	watchlist, err := h.watchlistService.List(c.Context(), userID)
	if err != nil {
		logger.Error("WatchlistHandler: Failed to get watchlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch watchlist",
		})
	}

	return c.JSON(fiber.Map{
		"watchlist": watchlist,
		"count":     len(watchlist),
	})
}

// AddToWatchlist adds a stock to the user's watchlist
// POST /api/v1/watchlist/:stock_id
func (h *WatchlistHandler) AddToWatchlist(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	stockID, err := uuid.Parse(c.Params("stock_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	// Reject IDs that do not belong to a tracked stock
	if _, err := h.stockService.GetByID(c.Context(), stockID); err != nil {
		if errors.Is(err, services.ErrStockNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Stock not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify stock",
		})
	}

	if err := h.watchlistService.Add(c.Context(), userID, stockID); err != nil {
		if errors.Is(err, services.ErrAlreadyInWatchlist) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Stock already in watchlist"})
		}
		logger.Error("WatchlistHandler: Failed to add stock: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add stock to watchlist",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"watching": true,
		"stock_id": stockID,
	})
}

// RemoveFromWatchlist removes a stock from the user's watchlist
// DELETE /api/v1/watchlist/:stock_id
func (h *WatchlistHandler) RemoveFromWatchlist(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	stockID, err := uuid.Parse(c.Params("stock_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	if err := h.watchlistService.Remove(c.Context(), userID, stockID); err != nil {
		if errors.Is(err, services.ErrNotInWatchlist) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Stock not in watchlist"})
		}
		logger.Error("WatchlistHandler: Failed to remove stock: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove stock from watchlist",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"watching": false,
		"stock_id": stockID,
	})
}
