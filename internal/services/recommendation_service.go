/**
 * @description
 * Service layer for recommendations.
 * Fetches live sentiment and price history, invokes the pure recommendation
 * engine, and persists the resulting snapshot.
 *
 * @dependencies
 * - backend/internal/analysis
 * - backend/internal/models
 * - gorm.io/gorm
 *
 * @notes
 * - A stored recommendation newer than the reuse window is returned as-is
 *   instead of regenerating.
 * - Unexpected failures during generation are caught and logged; the caller
 *   sees nil ("recommendation unavailable") and should treat it as retryable.
 *   Nothing is persisted from a failed computation.
 * - Concurrent refreshes for the same symbol may race and produce duplicate
 *   snapshots; accepted given the short validity window.
 */

package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stocksense-project/backend/internal/analysis"
	"github.com/stocksense-project/backend/internal/logger"
	"github.com/stocksense-project/backend/internal/models"
	"gorm.io/gorm"
)

const (
	// ReuseWindow is how long a stored recommendation stays fresh
	ReuseWindow = 24 * time.Hour

	newsLimit    = 10
	historyRange = "1mo"
)

// Result pairs a persisted recommendation with its engine details
type Result struct {
	Recommendation *models.Recommendation `json:"recommendation"`
	Details        *analysis.Recommendation `json:"details,omitempty"`
	Cached         bool                   `json:"is_cached"`
}

// TopEntry is one ranked recommendation with its stock
type TopEntry struct {
	Stock          models.Stock             `json:"stock"`
	Recommendation *analysis.Recommendation `json:"recommendation"`
}

type RecommendationService struct {
	db         *gorm.DB
	stocks     *StockService
	sentiments *SentimentService
}

func NewRecommendationService(db *gorm.DB, stocks *StockService, sentiments *SentimentService) *RecommendationService {
	return &RecommendationService{
		db:         db,
		stocks:     stocks,
		sentiments: sentiments,
	}
}

// ForStock returns the fresh stored recommendation for a stock, or generates,
// persists and returns a new one. Returns nil when generation fails.
func (s *RecommendationService) ForStock(ctx context.Context, stock *models.Stock, days int) (*Result, error) {
	// Reuse a recent snapshot when one exists
	var recent models.Recommendation
	err := s.db.WithContext(ctx).
		Where("stock_id = ?", stock.ID).
		Where("created_at >= ?", time.Now().Add(-ReuseWindow)).
		Order("created_at DESC").
		First(&recent).Error
	if err == nil {
		return &Result{Recommendation: &recent, Cached: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	details := s.Generate(ctx, stock, days)
	if details == nil {
		return nil, nil // unavailable; caller treats as retryable
	}

	record := &models.Recommendation{
		StockID:     stock.ID,
		Type:        details.Type,
		Confidence:  details.Confidence,
		Reason:      details.Reason,
		PriceTarget: details.PriceTarget,
		TimeFrame:   details.TimeFrame,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}

	return &Result{Recommendation: record, Details: details, Cached: false}, nil
}

// Generate runs the recommendation engine over live inputs for one stock.
// Never panics: unexpected errors are recovered, logged with the symbol, and
// surfaced as nil.
func (s *RecommendationService) Generate(ctx context.Context, stock *models.Stock, days int) (rec *analysis.Recommendation) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("RecommendationService: generation panic for %s: %v", stock.Symbol, r)
			rec = nil
		}
	}()

	// Live-refreshed sentiment, persisted as a side effect of the refresh
	news, err := s.sentiments.RefreshNews(ctx, stock.Symbol, newsLimit, true)
	if err != nil {
		logger.Error("RecommendationService: news refresh failed for %s: %v", stock.Symbol, err)
		news = nil
	}

	points := make([]analysis.SentimentPoint, len(news))
	for i, item := range news {
		points[i] = analysis.SentimentPoint{
			Compound:    item.Compound,
			PublishedAt: item.PublishedAt,
		}
	}

	input := analysis.Input{
		Symbol:       stock.Symbol,
		CurrentPrice: stock.CurrentPrice,
		Sentiment:    points,
	}

	// No sentiment short-circuits to hold before any price lookup
	if len(points) > 0 {
		bars, err := s.sentiments.yahoo.History(ctx, stock.Symbol, historyRange)
		if err != nil {
			logger.Error("RecommendationService: no price history for %s: %v", stock.Symbol, err)
		} else if len(bars) > 0 {
			closes := make([]float64, len(bars))
			for i, b := range bars {
				closes[i] = b.Close
			}
			input.Closes = closes
			input.HasPriceData = true
		}
	}

	return analysis.Recommend(input)
}

// History returns stored recommendations for a stock within the trailing window
func (s *RecommendationService) History(ctx context.Context, stockID uuid.UUID, days int) ([]models.Recommendation, error) {
	if days <= 0 {
		days = 30
	}
	fromDate := time.Now().AddDate(0, 0, -days)

	var history []models.Recommendation
	err := s.db.WithContext(ctx).
		Where("stock_id = ?", stockID).
		Where("created_at >= ?", fromDate).
		Order("created_at ASC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// Top generates recommendations across the whole tracked universe and returns
// the first limit entries ranked by (is-buy, confidence). Instruments whose
// generation fails are skipped; an empty result is not an error.
func (s *RecommendationService) Top(ctx context.Context, limit int) ([]TopEntry, error) {
	stocks, err := s.stocks.All(ctx)
	if err != nil {
		return nil, err
	}

	bySymbol := make(map[string]models.Stock, len(stocks))
	recs := make([]*analysis.Recommendation, 0, len(stocks))
	for i := range stocks {
		stock := stocks[i]
		rec := s.Generate(ctx, &stock, 7)
		if rec == nil {
			continue
		}
		bySymbol[stock.Symbol] = stock
		recs = append(recs, rec)
	}

	ranked := analysis.RankTop(recs, limit)

	entries := make([]TopEntry, 0, len(ranked))
	for _, rec := range ranked {
		entries = append(entries, TopEntry{
			Stock:          bySymbol[rec.Symbol],
			Recommendation: rec,
		})
	}
	return entries, nil
}
