/**
 * @description
 * Stock API Handlers.
 * Handles stock CRUD, price refresh and symbol search.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stocksense-project/backend/internal/logger"
	"github.com/stocksense-project/backend/internal/services"
)

// StockHandler handles stock-related requests
type StockHandler struct {
	stockService *services.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *services.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// ListStocks returns all tracked stocks, with optional filters
// GET /api/v1/stocks?sector=...&symbol=...
func (h *StockHandler) ListStocks(c *fiber.Ctx) error {
	sector := c.Query("sector")
	symbol := c.Query("symbol")

	stocks, err := h.stockService.List(c.Context(), sector, symbol)
	if err != nil {
		logger.Error("StockHandler: Failed to list stocks: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch stocks",
		})
	}

	return c.JSON(fiber.Map{
		"stocks": stocks,
		"count":  len(stocks),
	})
}

// GetStock returns a single stock by symbol
// GET /api/v1/stocks/:symbol
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	symbol := c.Params("symbol")

	stock, err := h.stockService.GetBySymbol(c.Context(), symbol)
	if err != nil {
		if errors.Is(err, services.ErrStockNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Stock not found"})
		}
		logger.Error("StockHandler: Failed to get stock %s: %v", symbol, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch stock",
		})
	}

	return c.JSON(stock)
}

// CreateStockRequest represents a stock creation request body
type CreateStockRequest struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// CreateStock adds a stock to the tracked universe (admin only)
// POST /api/v1/stocks
func (h *StockHandler) CreateStock(c *fiber.Ctx) error {
	var req CreateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Symbol is required",
		})
	}

	stock, err := h.stockService.Create(c.Context(), req.Symbol, req.Name, req.Sector)
	if err != nil {
		if errors.Is(err, services.ErrStockExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Stock already exists"})
		}
		logger.Error("StockHandler: Failed to create stock %s: %v", req.Symbol, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create stock",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(stock)
}

// UpdateStockRequest represents a stock update request body
type UpdateStockRequest struct {
	Name   *string `json:"name"`
	Sector *string `json:"sector"`
}

// UpdateStock updates a stock's metadata (admin only)
// PUT /api/v1/stocks/:id
func (h *StockHandler) UpdateStock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	var req UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	stock, err := h.stockService.Update(c.Context(), id, services.StockUpdate{
		Name:   req.Name,
		Sector: req.Sector,
	})
	if err != nil {
		if errors.Is(err, services.ErrStockNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Stock not found"})
		}
		logger.Error("StockHandler: Failed to update stock %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update stock",
		})
	}

	return c.JSON(stock)
}

// DeleteStock removes a stock and its dependent records (admin only)
// DELETE /api/v1/stocks/:id
func (h *StockHandler) DeleteStock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	if err := h.stockService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrStockNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Stock not found"})
		}
		logger.Error("StockHandler: Failed to delete stock %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete stock",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// RefreshStockPrice pulls the latest quote for a stock
// POST /api/v1/stocks/:id/refresh
func (h *StockHandler) RefreshStockPrice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	stock, err := h.stockService.RefreshPrice(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrStockNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Stock not found"})
		}
		logger.Error("StockHandler: Failed to refresh price for %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to refresh price",
		})
	}

	return c.JSON(stock)
}

// SearchStockRequest represents a symbol search request body
type SearchStockRequest struct {
	Symbol string `json:"symbol"`
}

// SearchStock resolves a symbol via cache, database or the upstream API
// POST /api/v1/stocks/search
func (h *StockHandler) SearchStock(c *fiber.Ctx) error {
	var req SearchStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Symbol is required",
		})
	}

	stock, source, err := h.stockService.SearchOrCreate(c.Context(), req.Symbol)
	if err != nil {
		if errors.Is(err, services.ErrStockNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Symbol not found"})
		}
		logger.Error("StockHandler: Failed to search symbol %s: %v", req.Symbol, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search symbol",
		})
	}

	return c.JSON(fiber.Map{
		"stock":  stock,
		"source": source,
	})
}
