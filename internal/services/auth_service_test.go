package services

import (
	"context"
	"testing"

	"yardwork_backend/internal/models"
	"yardwork_backend/internal/services/dto"
	"yardwork_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesUserAndIssuesToken(t *testing.T) {
	setTestConfig(t)
	users := newFakeUserRepo()
	svc := NewAuthService(nil, users)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Kind:     string(models.UserKindHomeowner),
		Email:    "anna@example.com",
		Password: "secret123",
		Name:     "Anna",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, models.UserKindHomeowner, resp.User.Kind)
	assert.Empty(t, resp.User.PasswordHash, "hash must not leak in response")

	stored, err := users.FindByEmail(nil, "anna@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	setTestConfig(t)
	users := newFakeUserRepo()
	svc := NewAuthService(nil, users)

	req := &dto.RegisterRequest{
		Kind:     string(models.UserKindCompanyOwner),
		Email:    "firma@example.com",
		Password: "secret123",
		Name:     "Firma GmbH",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assertAppError(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegister_RejectsUnknownKind(t *testing.T) {
	setTestConfig(t)
	svc := NewAuthService(nil, newFakeUserRepo())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Kind:     "admin",
		Email:    "x@example.com",
		Password: "secret123",
		Name:     "X",
	})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestLogin_SucceedsWithCorrectPassword(t *testing.T) {
	setTestConfig(t)
	users := newFakeUserRepo()
	svc := NewAuthService(nil, users)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Kind:     string(models.UserKindHomeowner),
		Email:    "anna@example.com",
		Password: "secret123",
		Name:     "Anna",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "anna@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_SameErrorForWrongPasswordAndUnknownEmail(t *testing.T) {
	setTestConfig(t)
	users := newFakeUserRepo()
	svc := NewAuthService(nil, users)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Kind:     string(models.UserKindHomeowner),
		Email:    "anna@example.com",
		Password: "secret123",
		Name:     "Anna",
	})
	require.NoError(t, err)

	_, errWrongPass := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "anna@example.com",
		Password: "wrong",
	})
	_, errNoUser := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	assertAppError(t, errWrongPass, apperrors.ErrInvalidCredentials)
	assertAppError(t, errNoUser, apperrors.ErrInvalidCredentials)
}
