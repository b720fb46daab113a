/**
 * @description
 * Watchlist database model.
 * Maps to the 'watchlist_items' table in PostgreSQL.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/google/uuid
 */

package models

import (
	"time"

	"github.com/google/uuid"
)

// WatchlistItem links a user to a tracked stock
type WatchlistItem struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	StockID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"stock_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name used by WatchlistItem to `watchlist_items`
func (WatchlistItem) TableName() string {
	return "watchlist_items"
}

// WatchlistEntry is a watchlist row joined with its stock for API responses
type WatchlistEntry struct {
	WatchlistItem
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	CurrentPrice  float64 `json:"current_price"`
	PreviousClose float64 `json:"previous_close"`
}
