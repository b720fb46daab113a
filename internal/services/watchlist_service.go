/**
 * @description
 * Watchlist Service for per-user stock tracking.
 *
 * @dependencies
 * - gorm.io/gorm
 * - backend/internal/models
 */

package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stocksense-project/backend/internal/logger"
	"github.com/stocksense-project/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyInWatchlist = errors.New("stock already in watchlist")
	ErrNotInWatchlist     = errors.New("stock not in watchlist")
)

// WatchlistService handles watchlist operations
type WatchlistService struct {
	db *gorm.DB
}

// NewWatchlistService creates a new WatchlistService
func NewWatchlistService(db *gorm.DB) *WatchlistService {
	return &WatchlistService{db: db}
}

// Add puts a stock on the user's watchlist
func (s *WatchlistService) Add(ctx context.Context, userID, stockID uuid.UUID) error {
	watching, err := s.Contains(ctx, userID, stockID)
	if err != nil {
		return err
	}
	if watching {
		return ErrAlreadyInWatchlist
	}

	item := &models.WatchlistItem{
		UserID:    userID,
		StockID:   stockID,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		logger.Error("WatchlistService: failed to add stock: %v", err)
		return err
	}
	return nil
}

// Remove takes a stock off the user's watchlist
func (s *WatchlistService) Remove(ctx context.Context, userID, stockID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND stock_id = ?", userID, stockID).
		Delete(&models.WatchlistItem{})

	if result.Error != nil {
		logger.Error("WatchlistService: failed to remove stock: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotInWatchlist
	}
	return nil
}

// List returns the user's watchlist joined with stock details
func (s *WatchlistService) List(ctx context.Context, userID uuid.UUID) ([]models.WatchlistEntry, error) {
	var items []models.WatchlistItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	entries := make([]models.WatchlistEntry, 0, len(items))
	for _, item := range items {
		var stock models.Stock
		if err := s.db.WithContext(ctx).
			First(&stock, "id = ?", item.StockID).Error; err != nil {
			// Skip stocks that no longer exist
			continue
		}
		entries = append(entries, models.WatchlistEntry{
			WatchlistItem: item,
			Symbol:        stock.Symbol,
			Name:          stock.Name,
			Sector:        stock.Sector,
			CurrentPrice:  stock.CurrentPrice,
			PreviousClose: stock.PreviousClose,
		})
	}

	return entries, nil
}

// Contains reports whether the user already watches the stock
func (s *WatchlistService) Contains(ctx context.Context, userID, stockID uuid.UUID) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&models.WatchlistItem{}).
		Where("user_id = ? AND stock_id = ?", userID, stockID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// WatcherIDs returns the IDs of all users watching a stock
func (s *WatchlistService) WatcherIDs(ctx context.Context, stockID uuid.UUID) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	result := s.db.WithContext(ctx).
		Model(&models.WatchlistItem{}).
		Where("stock_id = ?", stockID).
		Pluck("user_id", &userIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return userIDs, nil
}

// WatchedStockIDs returns the distinct stock IDs present on any watchlist
func (s *WatchlistService) WatchedStockIDs(ctx context.Context) ([]uuid.UUID, error) {
	var stockIDs []uuid.UUID
	result := s.db.WithContext(ctx).
		Model(&models.WatchlistItem{}).
		Distinct("stock_id").
		Pluck("stock_id", &stockIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return stockIDs, nil
}
