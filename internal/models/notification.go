/**
 * @description
 * Notification database model.
 * Maps to the 'notifications' table in PostgreSQL.
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

type NotificationType string

const (
	NotificationTypeRecommendation NotificationType = "recommendation"
	NotificationTypeAlert          NotificationType = "alert"
	NotificationTypeNews           NotificationType = "news"
)

// Notification is a per-user message referencing a stock or recommendation
type Notification struct {
	ID      uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    NotificationType `gorm:"not null" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `gorm:"type:text;not null" json:"message"`
	Read    bool             `gorm:"default:false" json:"read"`

	ReferenceID   *uuid.UUID `gorm:"type:uuid" json:"reference_id"`
	ReferenceType string     `json:"reference_type,omitempty"` // "stock" or "recommendation"

	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name used by Notification to `notifications`
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate ensures UUID is generated if not present
func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
