package dto

type SubmitReviewRequest struct {
	PostingID string  `json:"posting_id" binding:"required" validate:"required,uuid"`
	Rating    int     `json:"rating" binding:"required" validate:"required,min=1,max=5"`
	Title     *string `json:"title,omitempty" validate:"omitempty,max=100"`
	Text      string  `json:"text,omitempty" validate:"omitempty,max=2000"`
}
