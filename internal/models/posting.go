package models

import (
	"time"

	"gorm.io/datatypes"
)

// Posting - объявление домовладельца о работе (ландшафт, обслуживание дома).
// Статус мутирует только LifecycleService; версия используется для
// оптимистической блокировки при конкурентных переходах.
type Posting struct {
	BaseModel
	HomeownerID string         `gorm:"not null;index" json:"homeowner_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	PostalCode  string         `gorm:"not null" json:"postal_code"`
	Images      datatypes.JSON `gorm:"type:jsonb" json:"images"` // упорядоченный список URL
	StartDate   *time.Time     `json:"start_date"`
	Status      JobStatus      `gorm:"not null;default:'open';index" json:"status"`

	// Координаты заполняются внешним геокодером по PostalCode.
	// nil - геокодирование не выполнялось, радиусный фильтр пропускает такие записи.
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`

	// BidIDs - упорядоченный список id ставок на это объявление
	BidIDs datatypes.JSON `gorm:"type:jsonb" json:"bid_ids"`

	// AcceptedBidID - выигравшая ставка; обязана быть ровно одна для inprogress и далее
	AcceptedBidID *string `gorm:"index" json:"accepted_bid_id,omitempty"`

	// Confirmations - map[companyOwnerID]bool, подтверждение выполнения подрядчиком
	Confirmations datatypes.JSON `gorm:"type:jsonb" json:"confirmations"`

	Version int `gorm:"not null;default:1" json:"version"`
}
