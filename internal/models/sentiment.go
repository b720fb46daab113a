/**
 * @description
 * SentimentRecord database model.
 * Maps to the 'sentiment_records' table in PostgreSQL.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/google/uuid
 *
 * @notes
 * - Records are append-only; deduplicated by (stock_id, title, url).
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SentimentRecord is one scored piece of text tied to a stock.
// Immutable once created.
type SentimentRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	StockID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_sentiment_dedup" json:"stock_id"`
	StockSymbol string    `gorm:"not null;index" json:"stock_symbol"`
	Source      string    `gorm:"not null" json:"source"`
	Title       string    `gorm:"uniqueIndex:idx_sentiment_dedup" json:"title"`
	Content     string    `json:"content,omitempty"`
	URL         string    `gorm:"uniqueIndex:idx_sentiment_dedup" json:"url"`

	CompoundScore float64 `gorm:"column:compound_score;not null" json:"compound_score"`
	PositiveScore float64 `gorm:"column:positive_score;not null" json:"positive_score"`
	NeutralScore  float64 `gorm:"column:neutral_score;not null" json:"neutral_score"`
	NegativeScore float64 `gorm:"column:negative_score;not null" json:"negative_score"`
	Label         string  `gorm:"column:sentiment_label;not null" json:"sentiment_label"`

	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName overrides the table name used by SentimentRecord to `sentiment_records`
func (SentimentRecord) TableName() string {
	return "sentiment_records"
}

// BeforeCreate ensures UUID is generated if not present
func (r *SentimentRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
