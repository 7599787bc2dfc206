package models

// Review - отзыв домовладельца о подрядчике после завершения работ.
// Создается один раз на пару (posting, homeowner), не мутируется и не удаляется.
type Review struct {
	BaseModel
	PostingID      string  `gorm:"not null;index;uniqueIndex:idx_review_posting_homeowner" json:"posting_id"`
	HomeownerID    string  `gorm:"not null;index;uniqueIndex:idx_review_posting_homeowner" json:"homeowner_id"`
	CompanyOwnerID string  `gorm:"not null;index" json:"company_owner_id"`
	Rating         int     `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title          *string `json:"title,omitempty"`
	Text           string  `json:"text"`
}
