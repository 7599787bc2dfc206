package dto

import (
	"time"

	"yardwork_backend/internal/models"
)

type CreatePostingRequest struct {
	Title       string     `json:"title" binding:"required" validate:"required,max=100"`
	Description string     `json:"description" binding:"required" validate:"required,max=2000"`
	PostalCode  string     `json:"postal_code" binding:"required" validate:"required,max=10"`
	Images      []string   `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
	StartDate   *time.Time `json:"start_date,omitempty"`

	// Координаты, если клиент уже геокодировал почтовый индекс
	Lat *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lng *float64 `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
}

type UpdatePostingRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=100"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	PostalCode  *string    `json:"postal_code,omitempty" validate:"omitempty,max=10"`
	Images      []string   `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	Lat         *float64   `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lng         *float64   `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
}

// PostingResponse - объявление с раскодированными JSONB-полями
type PostingResponse struct {
	ID            string           `json:"id"`
	HomeownerID   string           `json:"homeowner_id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	PostalCode    string           `json:"postal_code"`
	Images        []string         `json:"images"`
	StartDate     *time.Time       `json:"start_date,omitempty"`
	Status        models.JobStatus `json:"status"`
	Lat           *float64         `json:"lat,omitempty"`
	Lng           *float64         `json:"lng,omitempty"`
	BidIDs        []string         `json:"bid_ids"`
	AcceptedBidID *string          `json:"accepted_bid_id,omitempty"`
	Confirmations map[string]bool  `json:"confirmations,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`

	// Bids заполняется только там, где фасад делает join по bid_ids
	Bids []models.Bid `json:"bids,omitempty"`
}

// ListPostingsQuery - параметры фасада для выборки открытых объявлений
type ListPostingsQuery struct {
	RadiusKm  *float64 `form:"radius_km" validate:"omitempty,gt=0"`
	CenterLat *float64 `form:"center_lat" validate:"omitempty,min=-90,max=90"`
	CenterLng *float64 `form:"center_lng" validate:"omitempty,min=-180,max=180"`
}
