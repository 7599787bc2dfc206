package services

import (
	"context"

	"yardwork_backend/internal/events"
	"yardwork_backend/internal/repositories"

	"gorm.io/gorm"
)

// withCtx привязывает контекст запроса к соединению. Nil-безопасна:
// в юнит-тестах сервисы работают с фейковыми репозиториями без живой БД.
func withCtx(db *gorm.DB, ctx context.Context) *gorm.DB {
	if db == nil {
		return nil
	}
	return db.WithContext(ctx)
}

// ServiceContainer - контейнер всех сервисов приложения.
// Зависимости передаются явно через конструкторы, глобальных синглтонов нет.
type ServiceContainer struct {
	Auth         *AuthService
	Posting      *PostingService
	Lifecycle    *LifecycleService
	Query        *QueryService
	Notification *NotificationService
}

func NewServiceContainer(db *gorm.DB, publisher events.Publisher) *ServiceContainer {
	txm := repositories.NewGormTxManager(db)

	userRepo := repositories.NewUserRepository()
	postingRepo := repositories.NewPostingRepository()
	bidRepo := repositories.NewBidRepository()
	reviewRepo := repositories.NewReviewRepository()
	notificationRepo := repositories.NewNotificationRepository()

	return &ServiceContainer{
		Auth:         NewAuthService(db, userRepo),
		Posting:      NewPostingService(db, txm, postingRepo, bidRepo, userRepo),
		Lifecycle:    NewLifecycleService(txm, postingRepo, bidRepo, reviewRepo, userRepo, publisher),
		Query:        NewQueryService(db, postingRepo, bidRepo, reviewRepo),
		Notification: NewNotificationService(db, notificationRepo, bidRepo, postingRepo),
	}
}
