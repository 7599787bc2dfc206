package services

import (
	"context"

	"yardwork_backend/internal/auth"
	"yardwork_backend/internal/models"
	"yardwork_backend/internal/repositories"
	"yardwork_backend/internal/services/dto"
	"yardwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AuthService - регистрация и вход. Пароль хранится только как bcrypt-хэш.
type AuthService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
}

func NewAuthService(db *gorm.DB, userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		db:       db,
		userRepo: userRepo,
	}
}

// Register создает пользователя заданного типа и сразу выдает токен
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	kind := models.UserKind(req.Kind)
	if kind != models.UserKindHomeowner && kind != models.UserKindCompanyOwner {
		return nil, apperrors.ValidationError(map[string]string{
			"kind": "must be homeowner or companyowner",
		})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	user := &models.User{
		Kind:         kind,
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		CompanyName:  req.CompanyName,
	}

	if err := s.userRepo.Create(withCtx(s.db, ctx), user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	user.PasswordHash = ""
	return &dto.AuthResponse{AccessToken: token, User: user}, nil
}

// Login проверяет пару email/пароль и выдает токен.
// Несуществующий email и неверный пароль не различаются в ответе.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(withCtx(s.db, ctx), req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	user.PasswordHash = ""
	return &dto.AuthResponse{AccessToken: token, User: user}, nil
}
