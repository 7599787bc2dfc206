package dto

import (
	"time"
)

type SubmitBidRequest struct {
	PostingID    string     `json:"posting_id" binding:"required" validate:"required,uuid"`
	Amount       float64    `json:"amount" binding:"required" validate:"required,gt=0"`
	Description  string     `json:"description" binding:"required" validate:"required,max=2000"`
	ProposedDate *time.Time `json:"proposed_date,omitempty"`
}

type CloseJobRequest struct {
	WinningBidID string `json:"winning_bid_id" binding:"required" validate:"required,uuid"`
}
