package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// NotificationRepositoryImpl implements domain.NotificationRepository using
// GORM.
type NotificationRepositoryImpl struct {
	db *gorm.DB
}

// DBNotification represents the database model for an in-app notification.
type DBNotification struct {
	ID          uint      `gorm:"primaryKey"`
	RecipientID uint      `gorm:"index"`
	SenderID    uint
	Type        string    `gorm:"size:32"`
	Title       string    `gorm:"size:255"`
	Message     string
	Priority    string    `gorm:"size:16"`
	Read        bool      `gorm:"index"`
	CreatedAt   time.Time `gorm:"index"`
}

func (DBNotification) TableName() string {
	return "notifications"
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// Create implements domain.NotificationRepository.
func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *domain.Notification) error {
	dbNotification := &DBNotification{
		RecipientID: n.RecipientID,
		SenderID:    n.SenderID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Priority:    n.Priority,
		Read:        n.Read,
	}
	if err := r.db.WithContext(ctx).Create(dbNotification).Error; err != nil {
		return err
	}
	n.ID = dbNotification.ID
	n.CreatedAt = dbNotification.CreatedAt
	return nil
}
