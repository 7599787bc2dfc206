package repositories

import (
	"errors"

	"yardwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Константы типов уведомлений
const (
	NotificationTypeNewBid          = "new_bid"
	NotificationTypeBidAccepted     = "bid_accepted"
	NotificationTypeBidRejected     = "bid_rejected"
	NotificationTypeJobConfirmed    = "job_confirmed"
	NotificationTypeJobClosed       = "job_closed"
	NotificationTypeReviewSubmitted = "review_submitted"
)

type NotificationRepository interface {
	CreateNotification(db *gorm.DB, notification *models.Notification) error
	CreateBulkNotifications(db *gorm.DB, notifications []*models.Notification) error
	FindUserNotifications(db *gorm.DB, userID string, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error)
	MarkAsRead(db *gorm.DB, notificationID, userID string) error
	GetUnreadCount(db *gorm.DB, userID string) (int64, error)
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) CreateNotification(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) CreateBulkNotifications(db *gorm.DB, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return db.Create(notifications).Error
}

func (r *NotificationRepositoryImpl) FindUserNotifications(db *gorm.DB, userID string, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error) {
	q := db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = false")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := q.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, notificationID, userID string) error {
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}
