/**
 * @description
 * Live Market Data API Handlers.
 * Thin pass-through over the upstream market data client for symbol search,
 * quote details and price history.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/yahoo
 */

package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/stocksense-project/backend/internal/logger"
	"github.com/stocksense-project/backend/internal/yahoo"
)

// LiveHandler handles live market data requests
type LiveHandler struct {
	yahooClient *yahoo.Client
}

// NewLiveHandler creates a new LiveHandler
func NewLiveHandler(yahooClient *yahoo.Client) *LiveHandler {
	return &LiveHandler{yahooClient: yahooClient}
}

// LiveSearchRequest represents a symbol lookup request body
type LiveSearchRequest struct {
	Symbol string `json:"symbol"`
}

// SearchSymbol looks up a symbol upstream and returns its current quote
// POST /api/v1/live/search
func (h *LiveHandler) SearchSymbol(c *fiber.Ctx) error {
	var req LiveSearchRequest
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

	quote, err := h.yahooClient.Quote(c.Context(), req.Symbol)
	if err != nil {
		logger.Error("LiveHandler: Symbol lookup failed for %s: %v", req.Symbol, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Symbol not found",
		})
	}

	return c.JSON(quote)
}

// GetDetails returns the current quote for a symbol
// GET /api/v1/live/details/:symbol
func (h *LiveHandler) GetDetails(c *fiber.Ctx) error {
	symbol := strings.ToUpper(c.Params("symbol"))

	quote, err := h.yahooClient.Quote(c.Context(), symbol)
	if err != nil {
		logger.Error("LiveHandler: Quote fetch failed for %s: %v", symbol, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to fetch quote from upstream",
		})
	}

	return c.JSON(quote)
}

// GetHistory returns daily price bars for a symbol
// GET /api/v1/live/history/:symbol?range=1mo
func (h *LiveHandler) GetHistory(c *fiber.Ctx) error {
	symbol := strings.ToUpper(c.Params("symbol"))
	rng := c.Query("range", "1mo")

	bars, err := h.yahooClient.History(c.Context(), symbol, rng)
	if err != nil {
		logger.Error("LiveHandler: History fetch failed for %s: %v", symbol, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to fetch history from upstream",
		})
	}

	return c.JSON(fiber.Map{
		"symbol": symbol,
		"range":  rng,
		"bars":   bars,
		"count":  len(bars),
	})
}
