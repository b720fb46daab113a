/**
 * @description
 * Notification Service for creating and managing user notifications.
 * Recommendation alerts fan out to every user watching the stock.
 *
 * @dependencies
 * - gorm.io/gorm
 * - backend/internal/models
 */

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stocksense-project/backend/internal/logger"
	"github.com/stocksense-project/backend/internal/models"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService handles notification operations
type NotificationService struct {
	db        *gorm.DB
	watchlist *WatchlistService
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(db *gorm.DB, watchlist *WatchlistService) *NotificationService {
	return &NotificationService{db: db, watchlist: watchlist}
}

// Create stores a single notification for a user
func (s *NotificationService) Create(ctx context.Context, n *models.Notification) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		logger.Error("NotificationService: failed to create notification: %v", err)
		return err
	}
	return nil
}

// NotifyWatchers sends a recommendation alert to every user watching the stock.
// Returns the number of notifications created.
func (s *NotificationService) NotifyWatchers(ctx context.Context, stock *models.Stock, rec *models.Recommendation) (int, error) {
	watchers, err := s.watchlist.WatcherIDs(ctx, stock.ID)
	if err != nil {
		return 0, err
	}
	if len(watchers) == 0 {
		return 0, nil
	}

	title := fmt.Sprintf("New %s recommendation for %s", rec.Type, stock.Symbol)
	message := fmt.Sprintf("%s: %s (confidence %.0f%%). %s",
		stock.Symbol, rec.Type, rec.Confidence*100, rec.Reason)

	created := 0
	for _, userID := range watchers {
		n := &models.Notification{
			UserID:        userID,
			Type:          models.NotificationTypeRecommendation,
			Title:         title,
			Message:       message,
			ReferenceID:   &rec.ID,
			ReferenceType: "recommendation",
		}
		if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
			logger.Error("NotificationService: failed to notify user %s: %v", userID, err)
			continue
		}
		created++
	}

	return created, nil
}

// List returns the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a user
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count)
	return count, result.Error
}

// MarkAsRead marks one notification as read, scoped to its owner
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead marks all of the user's notifications as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

// Delete removes a notification, scoped to its owner
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// DeleteOlderThan prunes read notifications older than the cutoff
func (s *NotificationService) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	result := s.db.WithContext(ctx).
		Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		logger.Error("NotificationService: failed to prune notifications: %v", result.Error)
	}
	return result.RowsAffected, result.Error
}
