/**
 * @description
 * Sentiment API Handlers.
 * Handles ad-hoc text scoring, stored records, aggregates and news refresh.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stocksense-project/backend/internal/logger"
	"github.com/stocksense-project/backend/internal/services"
)

// SentimentHandler handles sentiment-related requests
type SentimentHandler struct {
	sentimentService *services.SentimentService
}

// NewSentimentHandler creates a new SentimentHandler
func NewSentimentHandler(sentimentService *services.SentimentService) *SentimentHandler {
	return &SentimentHandler{sentimentService: sentimentService}
}

// AnalyzeRequest represents an ad-hoc scoring request body
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeText scores a single piece of text without persisting it
// POST /api/v1/sentiment/analyze
func (h *SentimentHandler) AnalyzeText(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result := h.sentimentService.ScoreText(req.Text)
	if result == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	return c.JSON(result)
}

// AddRecordRequest represents a manual sentiment submission
type AddRecordRequest struct {
	Symbol string `json:"symbol"`
	Source string `json:"source"`
	Text   string `json:"text"`
}

// AddRecord scores and stores a manually submitted text (analyst only)
// POST /api/v1/sentiment
func (h *SentimentHandler) AddRecord(c *fiber.Ctx) error {
	var req AddRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Symbol == "" || req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Symbol and text are required",
		})
	}
	if req.Source == "" {
		req.Source = "manual"
	}

	record, err := h.sentimentService.AddRecord(c.Context(), req.Symbol, req.Source, req.Text)
	if err != nil {
		if errors.Is(err, services.ErrStockNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Stock not found"})
		}
		logger.Error("SentimentHandler: Failed to add record for %s: %v", req.Symbol, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store sentiment record",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// GetRecords returns stored sentiment records for a stock
// GET /api/v1/sentiment/stock/:symbol?days=7
func (h *SentimentHandler) GetRecords(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	days := c.QueryInt("days", 7)

	records, err := h.sentimentService.Records(c.Context(), symbol, days)
	if err != nil {
		logger.Error("SentimentHandler: Failed to get records for %s: %v", symbol, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sentiment records",
		})
	}

	return c.JSON(fiber.Map{
		"symbol":  symbol,
		"records": records,
		"count":   len(records),
	})
}

// GetRecordsBySource filters stored records by their source
// GET /api/v1/sentiment/stock/:symbol/sources/:source?days=7
func (h *SentimentHandler) GetRecordsBySource(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	source := c.Params("source")
	days := c.QueryInt("days", 7)

	records, err := h.sentimentService.RecordsBySource(c.Context(), symbol, source, days)
	if err != nil {
		logger.Error("SentimentHandler: Failed to get %s records for %s: %v", source, symbol, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sentiment records",
		})
	}

	return c.JSON(fiber.Map{
		"symbol":  symbol,
		"source":  source,
		"records": records,
		"count":   len(records),
	})
}

// GetAggregate returns the recency-weighted aggregate for a stock
// GET /api/v1/sentiment/stock/:symbol/aggregate?days=7
func (h *SentimentHandler) GetAggregate(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	days := c.QueryInt("days", 7)

	aggregate, err := h.sentimentService.AggregateForSymbol(c.Context(), symbol, days)
	if err != nil {
		logger.Error("SentimentHandler: Failed to aggregate for %s: %v", symbol, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to aggregate sentiment",
		})
	}
	if aggregate == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No sentiment data available for this stock",
		})
	}

	return c.JSON(aggregate)
}

// RefreshNews pulls fresh news, scores it and persists new records
// POST /api/v1/sentiment/stock/:symbol/refresh
func (h *SentimentHandler) RefreshNews(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	limit := c.QueryInt("limit", 0)

	items, err := h.sentimentService.RefreshNews(c.Context(), symbol, limit, true)
	if err != nil {
		logger.Error("SentimentHandler: Failed to refresh news for %s: %v", symbol, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to fetch news from upstream",
		})
	}

	return c.JSON(fiber.Map{
		"symbol": symbol,
		"items":  items,
		"count":  len(items),
	})
}

// GetLiveSentiment scores fresh news without persisting anything
// GET /api/v1/sentiment/stock/:symbol/live
func (h *SentimentHandler) GetLiveSentiment(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	limit := c.QueryInt("limit", 0)

	items, err := h.sentimentService.RefreshNews(c.Context(), symbol, limit, false)
	if err != nil {
		logger.Error("SentimentHandler: Failed live scoring for %s: %v", symbol, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to fetch news from upstream",
		})
	}

	return c.JSON(fiber.Map{
		"symbol": symbol,
		"items":  items,
		"count":  len(items),
	})
}
