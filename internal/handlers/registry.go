package handlers

import (
	"yardwork_backend/internal/services"
	"yardwork_backend/internal/validator"
)

// AppHandlers - контейнер всех HTTP-обработчиков
type AppHandlers struct {
	Auth         *AuthHandler
	Posting      *PostingHandler
	Bid          *BidHandler
	Review       *ReviewHandler
	Notification *NotificationHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, svc.Auth),
		Posting:      NewPostingHandler(base, svc.Posting, svc.Lifecycle, svc.Query),
		Bid:          NewBidHandler(base, svc.Lifecycle, svc.Query),
		Review:       NewReviewHandler(base, svc.Lifecycle, svc.Query),
		Notification: NewNotificationHandler(base, svc.Notification),
	}
}
