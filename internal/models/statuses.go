package models

type UserKind string
type JobStatus string
type BidStatus string

const (
	UserKindHomeowner    UserKind = "homeowner"
	UserKindCompanyOwner UserKind = "companyowner"

	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "inprogress"
	JobStatusCompleted  JobStatus = "completed"
	// JobStatusClosedAlias - legacy значение "closed". Исторически клиенты
	// фильтровали то по "closed", то по "completed"; хранится всегда
	// "completed", алиас принимается только на чтении.
	JobStatusClosedAlias JobStatus = "closed"

	BidStatusPending   BidStatus = "pending"
	BidStatusAccepted  BidStatus = "accepted"
	BidStatusRejected  BidStatus = "rejected"
	BidStatusCompleted BidStatus = "completed"
)

// Terminal возвращает true, если из статуса ставки нет переходов
func (s BidStatus) Terminal() bool {
	switch s {
	case BidStatusAccepted, BidStatusRejected, BidStatusCompleted:
		return true
	default:
		return false
	}
}

// Canonical нормализует legacy "closed" в "completed"
func (s JobStatus) Canonical() JobStatus {
	if s == JobStatusClosedAlias {
		return JobStatusCompleted
	}
	return s
}
