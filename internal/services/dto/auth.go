package dto

import (
	"yardwork_backend/internal/models"
)

type RegisterRequest struct {
	Kind        string  `json:"kind" binding:"required" validate:"required,is-user-kind"`
	Email       string  `json:"email" binding:"required" validate:"required,email"`
	Password    string  `json:"password" binding:"required" validate:"required,min=6"`
	Name        string  `json:"name" binding:"required" validate:"required,max=100"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}
