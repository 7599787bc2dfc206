package events

import (
	"time"
)

// EventType - тип события перехода жизненного цикла
type EventType string

const (
	EventBidSubmitted    EventType = "bid_submitted"
	EventBidAccepted     EventType = "bid_accepted"
	EventBidsRejected    EventType = "bids_rejected"
	EventJobConfirmed    EventType = "job_confirmed"
	EventJobClosed       EventType = "job_closed"
	EventReviewSubmitted EventType = "review_submitted"
)

// Event публикуется после успешного коммита перехода.
// Несет только id затронутых сущностей; доставка получателям
// (push, чат-подсказки) - ответственность подписчиков.
type Event struct {
	Type      EventType
	PostingID string
	BidID     string   // для bid_submitted / bid_accepted
	BidIDs    []string // для bids_rejected
	ReviewID  string   // для review_submitted
	ActorID   string   // кто инициировал переход
	TargetID  string   // кого событие касается (получатель уведомления)
	Timestamp time.Time
}

// Publisher - интерфейс, который видит LifecycleService.
// Продакшен-реализация - Bus; в тестах подменяется записывающей заглушкой.
type Publisher interface {
	Publish(e Event)
}
