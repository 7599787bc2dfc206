package services

import (
	"context"
	"fmt"

	"yardwork_backend/internal/events"
	"yardwork_backend/internal/logger"
	"yardwork_backend/internal/models"
	"yardwork_backend/internal/repositories"
	"yardwork_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationService - уведомления о переходах жизненного цикла.
// Подписывается на шину событий через HandleEvent; сами переходы
// его не ждут, ошибка записи уведомления логируется и глотается.
type NotificationService struct {
	db               *gorm.DB
	notificationRepo repositories.NotificationRepository
	bidRepo          repositories.BidRepository
	postingRepo      repositories.PostingRepository
}

func NewNotificationService(
	db *gorm.DB,
	notificationRepo repositories.NotificationRepository,
	bidRepo repositories.BidRepository,
	postingRepo repositories.PostingRepository,
) *NotificationService {
	return &NotificationService{
		db:               db,
		notificationRepo: notificationRepo,
		bidRepo:          bidRepo,
		postingRepo:      postingRepo,
	}
}

// Notification Queries

func (s *NotificationService) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	notifications, total, err := s.notificationRepo.FindUserNotifications(withCtx(s.db, ctx), userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, apperrors.StoreUnavailable(err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, total, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID string) error {
	err := s.notificationRepo.MarkAsRead(withCtx(s.db, ctx), notificationID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err, "notification")
		}
		return apperrors.StoreUnavailable(err)
	}
	return nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(withCtx(s.db, ctx), userID)
	if err != nil {
		return 0, apperrors.StoreUnavailable(err)
	}
	return count, nil
}

// Event Subscriber

// HandleEvent превращает событие перехода в записи уведомлений.
// Регистрируется в шине при старте приложения.
func (s *NotificationService) HandleEvent(e events.Event) {
	var err error

	switch e.Type {
	case events.EventBidSubmitted:
		err = s.notify(e.TargetID, repositories.NotificationTypeNewBid,
			"New bid received",
			"A company has placed a bid on your posting", e)

	case events.EventBidAccepted:
		err = s.notify(e.TargetID, repositories.NotificationTypeBidAccepted,
			"Your bid was accepted",
			"The homeowner accepted your bid. The job is now in progress", e)

	case events.EventBidsRejected:
		err = s.notifyRejectedBidders(e)

	case events.EventJobConfirmed:
		err = s.notify(e.TargetID, repositories.NotificationTypeJobConfirmed,
			"Completion confirmed",
			"The company confirmed the work is done. You can now close the job", e)

	case events.EventJobClosed:
		err = s.notify(e.TargetID, repositories.NotificationTypeJobClosed,
			"Job closed",
			"The homeowner closed the job. You can expect a review", e)

	case events.EventReviewSubmitted:
		err = s.notify(e.TargetID, repositories.NotificationTypeReviewSubmitted,
			"New review",
			"A homeowner left a review about your work", e)
	}

	if err != nil {
		logger.Error("failed to persist notification",
			"event_type", string(e.Type),
			"posting_id", e.PostingID,
			"error", err)
	}
}

func (s *NotificationService) notify(userID, notifType, title, message string, e events.Event) error {
	if userID == "" {
		return nil
	}
	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    eventData(e),
	}
	return s.notificationRepo.CreateNotification(s.db, notification)
}

// notifyRejectedBidders создает по уведомлению на каждую отклоненную ставку
func (s *NotificationService) notifyRejectedBidders(e events.Event) error {
	notifications := make([]*models.Notification, 0, len(e.BidIDs))
	for _, bidID := range e.BidIDs {
		bid, err := s.bidRepo.FindByID(s.db, bidID)
		if err != nil {
			logger.Warn("skipping rejection notice, bid lookup failed",
				"bid_id", bidID, "error", err)
			continue
		}
		notifications = append(notifications, &models.Notification{
			UserID:  bid.BidderID,
			Type:    repositories.NotificationTypeBidRejected,
			Title:   "Your bid was not selected",
			Message: "The homeowner went with another bid on this posting",
			Data:    eventData(e),
		})
	}
	return s.notificationRepo.CreateBulkNotifications(s.db, notifications)
}

func eventData(e events.Event) datatypes.JSON {
	payload := fmt.Sprintf(`{"posting_id":%q,"bid_id":%q}`, e.PostingID, e.BidID)
	return datatypes.JSON(payload)
}
