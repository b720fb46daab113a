/**
 * @description
 * Service layer for Stock metadata.
 * Orchestrates the upstream quote source, the TTL cache and Postgres.
 *
 * @dependencies
 * - backend/internal/yahoo
 * - backend/internal/cache
 * - backend/internal/models
 * - gorm.io/gorm
 */

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stocksense-project/backend/internal/cache"
	"github.com/stocksense-project/backend/internal/logger"
	"github.com/stocksense-project/backend/internal/models"
	"github.com/stocksense-project/backend/internal/yahoo"
	"gorm.io/gorm"
)

// SearchSource reports where a search result came from
type SearchSource string

const (
	SourceCache    SearchSource = "cache"
	SourceDatabase SearchSource = "database"
	SourceAPI      SearchSource = "api"
)

var (
	ErrStockNotFound = errors.New("stock not found")
	ErrStockExists   = errors.New("stock already exists")
)

type StockService struct {
	db       *gorm.DB
	cache    cache.Cache
	yahoo    *yahoo.Client
	cacheTTL time.Duration
}

func NewStockService(db *gorm.DB, c cache.Cache, yahooClient *yahoo.Client, cacheTTL time.Duration) *StockService {
	return &StockService{
		db:       db,
		cache:    c,
		yahoo:    yahooClient,
		cacheTTL: cacheTTL,
	}
}

// List returns stocks, optionally filtered by sector and/or a symbol substring
func (s *StockService) List(ctx context.Context, sector, symbol string) ([]models.Stock, error) {
	query := s.db.WithContext(ctx).Model(&models.Stock{})

	if sector != "" {
		query = query.Where("sector = ?", sector)
	}
	if symbol != "" {
		query = query.Where("symbol ILIKE ?", "%"+strings.ToUpper(symbol)+"%")
	}

	var stocks []models.Stock
	if err := query.Order("symbol ASC").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// GetBySymbol looks a stock up by its unique symbol
func (s *StockService) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	var stock models.Stock
	err := s.db.WithContext(ctx).
		Where("symbol = ?", strings.ToUpper(symbol)).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStockNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// GetByID looks a stock up by primary key
func (s *StockService) GetByID(ctx context.Context, id uuid.UUID) (*models.Stock, error) {
	var stock models.Stock
	err := s.db.WithContext(ctx).First(&stock, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStockNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// All returns every tracked stock (the ranking universe)
func (s *StockService) All(ctx context.Context) ([]models.Stock, error) {
	var stocks []models.Stock
	if err := s.db.WithContext(ctx).Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// Create adds a new stock. Price fields are best-effort filled from the
// upstream quote; a quote failure does not block creation.
func (s *StockService) Create(ctx context.Context, symbol, name, sector string) (*models.Stock, error) {
	stock := &models.Stock{
		Symbol:      strings.ToUpper(symbol),
		Name:        name,
		Sector:      sector,
		LastUpdated: time.Now(),
	}

	if quote, err := s.yahoo.Quote(ctx, stock.Symbol); err == nil {
		stock.CurrentPrice = quote.CurrentPrice
		stock.PreviousClose = quote.PreviousClose
	} else {
		logger.Error("StockService: quote fetch failed for %s on create: %v", stock.Symbol, err)
	}

	if err := s.db.WithContext(ctx).Create(stock).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrStockExists
		}
		return nil, err
	}
	return stock, nil
}

// StockUpdate lists the mutable fields; nil pointers are left unchanged
type StockUpdate struct {
	Name          *string
	Sector        *string
	CurrentPrice  *float64
	PreviousClose *float64
}

// Update applies a partial update to a stock
func (s *StockService) Update(ctx context.Context, id uuid.UUID, upd StockUpdate) (*models.Stock, error) {
	stock, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Sector != nil {
		updates["sector"] = *upd.Sector
	}
	if upd.CurrentPrice != nil {
		updates["current_price"] = *upd.CurrentPrice
	}
	if upd.PreviousClose != nil {
		updates["previous_close"] = *upd.PreviousClose
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(stock).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.invalidate(ctx, stock.Symbol)
	}
	return stock, nil
}

// Delete removes a stock and its dependent records in one transaction.
// Sentiment and recommendation rows never outlive their stock.
func (s *StockService) Delete(ctx context.Context, id uuid.UUID) error {
	stock, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stock_id = ?", id).Delete(&models.SentimentRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("stock_id = ?", id).Delete(&models.Recommendation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("stock_id = ?", id).Delete(&models.WatchlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Stock{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, stock.Symbol)
	return nil
}

// RefreshPrice re-fetches the quote and updates the stored price fields
func (s *StockService) RefreshPrice(ctx context.Context, id uuid.UUID) (*models.Stock, error) {
	stock, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	quote, err := s.yahoo.Quote(ctx, stock.Symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", stock.Symbol, err)
	}

	updates := map[string]interface{}{
		"current_price":  quote.CurrentPrice,
		"previous_close": quote.PreviousClose,
		"last_updated":   time.Now(),
	}
	if err := s.db.WithContext(ctx).Model(stock).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.invalidate(ctx, stock.Symbol)
	return stock, nil
}

// SearchOrCreate resolves a symbol via cache -> database -> upstream API,
// creating the stock on first reference.
func (s *StockService) SearchOrCreate(ctx context.Context, symbol string) (*models.Stock, SearchSource, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, "", fmt.Errorf("symbol is required")
	}

	// 1. Cache
	var cached models.Stock
	if found, err := s.cache.Get(ctx, symbolKey(symbol), &cached); err == nil && found {
		return &cached, SourceCache, nil
	}

	// 2. Database
	stock, err := s.GetBySymbol(ctx, symbol)
	if err == nil {
		s.cacheStock(ctx, stock)
		return stock, SourceDatabase, nil
	}
	if !errors.Is(err, ErrStockNotFound) {
		return nil, "", err
	}

	// 3. Upstream API
	quote, err := s.yahoo.Quote(ctx, symbol)
	if err != nil {
		return nil, "", ErrStockNotFound
	}

	stock = &models.Stock{
		Symbol:        symbol,
		Name:          quote.Name,
		CurrentPrice:  quote.CurrentPrice,
		PreviousClose: quote.PreviousClose,
		LastUpdated:   time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(stock).Error; err != nil {
		return nil, "", err
	}

	s.cacheStock(ctx, stock)
	return stock, SourceAPI, nil
}

// EnsureStock returns the stock for symbol, auto-creating a placeholder row
// on first reference (used by the sentiment ingest path).
func (s *StockService) EnsureStock(ctx context.Context, symbol string) (*models.Stock, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	stock, err := s.GetBySymbol(ctx, symbol)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, ErrStockNotFound) {
		return nil, err
	}

	stock = &models.Stock{
		Symbol:      symbol,
		Name:        fmt.Sprintf("%s (auto)", symbol),
		Sector:      "Unknown",
		LastUpdated: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(stock).Error; err != nil {
		return nil, err
	}
	return stock, nil
}

func (s *StockService) cacheStock(ctx context.Context, stock *models.Stock) {
	if err := s.cache.Set(ctx, symbolKey(stock.Symbol), stock, s.cacheTTL); err != nil {
		logger.Error("StockService: failed to cache %s: %v", stock.Symbol, err)
	}
}

func (s *StockService) invalidate(ctx context.Context, symbol string) {
	if err := s.cache.Clear(ctx, symbolKey(symbol)); err != nil {
		logger.Error("StockService: failed to invalidate cache for %s: %v", symbol, err)
	}
}

func symbolKey(symbol string) string {
	return "stock:" + symbol
}
