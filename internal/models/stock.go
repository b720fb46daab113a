/**
 * @description
 * Stock database model.
 * Maps to the 'stocks' table in PostgreSQL.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/google/uuid
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stock represents a tracked instrument. Rows are created on first reference
// (search or explicit add) and mutated only on price refresh.
type Stock struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Symbol        string    `gorm:"uniqueIndex;not null" json:"symbol"`
	Name          string    `gorm:"not null" json:"name"`
	Sector        string    `json:"sector"`
	CurrentPrice  float64   `gorm:"column:current_price" json:"current_price"`
	PreviousClose float64   `gorm:"column:previous_close" json:"previous_close"`
	LastUpdated   time.Time `gorm:"column:last_updated;autoCreateTime" json:"last_updated"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name used by Stock to `stocks`
func (Stock) TableName() string {
	return "stocks"
}

// BeforeCreate ensures UUID is generated if not present
func (s *Stock) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
