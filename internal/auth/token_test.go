package auth

import (
	"testing"

	"yardwork_backend/internal/config"
	"yardwork_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTokenConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestGenerateAndParseToken(t *testing.T) {
	setTokenConfig(t)

	user := &models.User{
		BaseModel: models.BaseModel{ID: "user-1"},
		Kind:      models.UserKindCompanyOwner,
	}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserKindCompanyOwner, claims.Kind)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	setTokenConfig(t)

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	setTokenConfig(t)

	user := &models.User{
		BaseModel: models.BaseModel{ID: "user-1"},
		Kind:      models.UserKindHomeowner,
	}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	config.AppConfig.JWT.Secret = "another-secret"
	_, err = ParseToken(token)
	assert.Error(t, err)
}
