/**
 * @description
 * Service layer for sentiment ingestion and aggregation.
 * Scrapes headlines from the news source, scores them, and persists records
 * with dedup by (stock, title, url).
 *
 * @dependencies
 * - backend/internal/sentiment
 * - backend/internal/yahoo
 * - backend/internal/models
 * - github.com/jackc/pgconn: unique-violation detection on dedup insert
 * - gorm.io/gorm
 */

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/stocksense-project/backend/internal/logger"
	"github.com/stocksense-project/backend/internal/models"
	"github.com/stocksense-project/backend/internal/sentiment"
	"github.com/stocksense-project/backend/internal/yahoo"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// ScoredNewsItem is a live headline with its polarity scores attached
type ScoredNewsItem struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	sentiment.ScoreResult
}

type SentimentService struct {
	db     *gorm.DB
	scorer *sentiment.Scorer
	yahoo  *yahoo.Client
	stocks *StockService
}

func NewSentimentService(db *gorm.DB, scorer *sentiment.Scorer, yahooClient *yahoo.Client, stocks *StockService) *SentimentService {
	return &SentimentService{
		db:     db,
		scorer: scorer,
		yahoo:  yahooClient,
		stocks: stocks,
	}
}

// ScoreText analyzes arbitrary text. Returns nil for empty input.
func (s *SentimentService) ScoreText(text string) *sentiment.ScoreResult {
	return s.scorer.Score(text)
}

// RefreshNews fetches up to limit recent headlines for a symbol, scores them,
// and (when persist is set) creates sentiment records, auto-creating the
// stock on first reference. Duplicate headlines are silently skipped.
func (s *SentimentService) RefreshNews(ctx context.Context, symbol string, limit int, persist bool) ([]ScoredNewsItem, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	articles, err := s.yahoo.SearchNews(ctx, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
	}

	items := make([]ScoredNewsItem, 0, len(articles))
	for _, article := range articles {
		score := s.scorer.Score(article.Title)
		if score == nil {
			continue
		}
		items = append(items, ScoredNewsItem{
			Title:       article.Title,
			URL:         article.URL,
			Source:      article.Publisher,
			PublishedAt: article.PublishedAt,
			ScoreResult: *score,
		})
	}

	if !persist || len(items) == 0 {
		return items, nil
	}

	stock, err := s.stocks.EnsureStock(ctx, symbol)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		publishedAt := item.PublishedAt
		record := &models.SentimentRecord{
			StockID:       stock.ID,
			StockSymbol:   stock.Symbol,
			Source:        item.Source,
			Title:         item.Title,
			URL:           item.URL,
			CompoundScore: item.Compound,
			PositiveScore: item.Positive,
			NeutralScore:  item.Neutral,
			NegativeScore: item.Negative,
			Label:         string(item.Label),
			PublishedAt:   &publishedAt,
		}

		if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
			if isUniqueViolation(err) {
				continue // already ingested
			}
			logger.Error("SentimentService: failed to persist record for %s: %v", symbol, err)
		}
	}

	return items, nil
}

// AddRecord scores and persists a single manually submitted text for a stock.
// The stock must already exist.
func (s *SentimentService) AddRecord(ctx context.Context, symbol, source, text string) (*models.SentimentRecord, error) {
	stock, err := s.stocks.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	score := s.scorer.Score(text)
	if score == nil {
		return nil, fmt.Errorf("text is required")
	}

	now := time.Now()
	record := &models.SentimentRecord{
		StockID:       stock.ID,
		StockSymbol:   stock.Symbol,
		Source:        source,
		Title:         text,
		Content:       text,
		CompoundScore: score.Compound,
		PositiveScore: score.Positive,
		NeutralScore:  score.Neutral,
		NegativeScore: score.Negative,
		Label:         string(score.Label),
		PublishedAt:   &now,
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("duplicate sentiment record")
		}
		return nil, err
	}
	return record, nil
}

// Records returns persisted records for a symbol within the trailing window
func (s *SentimentService) Records(ctx context.Context, symbol string, days int) ([]models.SentimentRecord, error) {
	return s.records(ctx, symbol, "", days)
}

// RecordsBySource filters the window further by source name
func (s *SentimentService) RecordsBySource(ctx context.Context, symbol, source string, days int) ([]models.SentimentRecord, error) {
	return s.records(ctx, symbol, source, days)
}

func (s *SentimentService) records(ctx context.Context, symbol, source string, days int) ([]models.SentimentRecord, error) {
	if days <= 0 {
		days = 7
	}
	fromDate := time.Now().AddDate(0, 0, -days)

	query := s.db.WithContext(ctx).
		Where("stock_symbol = ?", strings.ToUpper(symbol)).
		Where("created_at >= ?", fromDate)
	if source != "" {
		query = query.Where("source = ?", source)
	}

	var records []models.SentimentRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// AggregateForSymbol computes the recency-weighted aggregate over the window.
// Returns nil when no records exist in the window.
func (s *SentimentService) AggregateForSymbol(ctx context.Context, symbol string, days int) (*sentiment.AggregateResult, error) {
	records, err := s.Records(ctx, symbol, days)
	if err != nil {
		return nil, err
	}

	scored := make([]sentiment.ScoredRecord, len(records))
	for i, r := range records {
		scored[i] = sentiment.ScoredRecord{
			Compound:    r.CompoundScore,
			Positive:    r.PositiveScore,
			Neutral:     r.NeutralScore,
			Negative:    r.NegativeScore,
			Label:       sentiment.Label(r.Label),
			PublishedAt: r.PublishedAt,
		}
	}

	return sentiment.Aggregate(scored, time.Now()), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
