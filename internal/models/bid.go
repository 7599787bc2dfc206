package models

import (
	"time"
)

// Bid - ценовое предложение подрядчика на объявление.
// После перехода в терминальный статус запись не изменяется.
type Bid struct {
	BaseModel
	PostingID    string     `gorm:"not null;index" json:"posting_id"`
	BidderID     string     `gorm:"not null;index" json:"bidder_id"`
	Amount       float64    `gorm:"not null" json:"amount"`
	Description  string     `gorm:"not null" json:"description"`
	ProposedDate *time.Time `json:"proposed_date"`
	Status       BidStatus  `gorm:"not null;default:'pending';index" json:"status"`
	Version      int        `gorm:"not null;default:1" json:"version"`
}
