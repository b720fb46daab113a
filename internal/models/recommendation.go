/**
 * @description
 * Recommendation database model.
 * Maps to the 'recommendations' table in PostgreSQL.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/google/uuid
 *
 * @notes
 * - A row is a point-in-time snapshot; a fresh one is generated only when
 *   no row newer than the reuse window exists for the stock.
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecommendationType string

const (
	RecommendationBuy  RecommendationType = "buy"
	RecommendationSell RecommendationType = "sell"
	RecommendationHold RecommendationType = "hold"
)

type TimeFrame string

const (
	TimeFrameShort  TimeFrame = "short-term"
	TimeFrameMedium TimeFrame = "medium-term"
	TimeFrameLong   TimeFrame = "long-term"
)

// Recommendation is a stored buy/sell/hold snapshot for a stock
type Recommendation struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	StockID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"stock_id"`
	Type        RecommendationType `gorm:"not null" json:"type"`
	Confidence  float64            `gorm:"column:confidence_score;not null" json:"confidence_score"`
	Reason      string             `gorm:"type:text" json:"reason"`
	PriceTarget *float64           `gorm:"column:price_target" json:"price_target"`
	TimeFrame   TimeFrame          `gorm:"column:time_frame;default:short-term" json:"time_frame"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name used by Recommendation to `recommendations`
func (Recommendation) TableName() string {
	return "recommendations"
}

// BeforeCreate ensures UUID is generated if not present
func (r *Recommendation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
