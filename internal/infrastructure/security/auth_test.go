package security

import (
	"context"
	"testing"
	"time"

	"github.com/pantrybook/pantrybook/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(expiration time.Duration) *AuthService {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-key-for-testing-only-32-bytes",
			JWTExpiration: expiration,
		},
	}
	return NewAuthService(cfg, zap.NewNop(), nil)
}

func TestGenerateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuthService(time.Hour)

	token, err := auth.GenerateToken(ctx, 42, "test@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuthService(time.Hour)

	token, err := auth.GenerateToken(ctx, 42, "test@example.com")
	require.NoError(t, err)

	_, err = auth.ValidateToken(ctx, token+"x")
	assert.Error(t, err)

	_, err = auth.ValidateToken(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuthService(time.Hour)

	otherCfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "a-completely-different-signing-secret!",
			JWTExpiration: time.Hour,
		},
	}
	other := NewAuthService(otherCfg, zap.NewNop(), nil)

	token, err := other.GenerateToken(ctx, 42, "test@example.com")
	require.NoError(t, err)

	_, err = auth.ValidateToken(ctx, token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuthService(-time.Minute)

	token, err := auth.GenerateToken(ctx, 42, "test@example.com")
	require.NoError(t, err)

	_, err = auth.ValidateToken(ctx, token)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.Error(t, err)

	_, err = ExtractBearerToken("Basic abc123")
	assert.Error(t, err)

	_, err = ExtractBearerToken("Bearer")
	assert.Error(t, err)
}
