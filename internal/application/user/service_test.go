package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	userapp "github.com/pantrybook/pantrybook/internal/application/user"
	"github.com/pantrybook/pantrybook/internal/infrastructure/persistence/gorm"
	"github.com/pantrybook/pantrybook/internal/infrastructure/security"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"github.com/pantrybook/pantrybook/test/testutils"
)

func newService(t *testing.T) (*userapp.UserService, *security.AuthService) {
	t.Helper()

	db := testutils.NewTestDB(t)
	cfg := testutils.NewTestConfig(t)
	logger := zap.NewNop()

	auth := security.NewAuthService(cfg, logger, nil)
	service := userapp.NewUserService(gorm.NewUserRepository(db), auth, logger)
	return service, auth
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	t.Run("creates an account", func(t *testing.T) {
		dto, err := service.Register(ctx, userapp.RegisterCommand{
			Email:    "new@example.com",
			Name:     "New User",
			Password: "testpass123",
		})
		require.NoError(t, err)
		assert.NotZero(t, dto.ID)
		assert.Equal(t, "new@example.com", dto.Email)
		assert.Equal(t, "New User", dto.Name)
	})

	t.Run("normalizes the email domain", func(t *testing.T) {
		dto, err := service.Register(ctx, userapp.RegisterCommand{
			Email:    "Mixed@EXAMPLE.com",
			Password: "testpass123",
		})
		require.NoError(t, err)
		assert.Equal(t, "Mixed@example.com", dto.Email)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		_, err := service.Register(ctx, userapp.RegisterCommand{
			Email:    "taken@example.com",
			Password: "testpass123",
		})
		require.NoError(t, err)

		_, err = service.Register(ctx, userapp.RegisterCommand{
			Email:    "taken@example.com",
			Password: "otherpass123",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})

	t.Run("rejects an empty email", func(t *testing.T) {
		_, err := service.Register(ctx, userapp.RegisterCommand{
			Email:    "",
			Password: "testpass123",
		})
		assert.Equal(t, apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})

	t.Run("rejects a short password", func(t *testing.T) {
		_, err := service.Register(ctx, userapp.RegisterCommand{
			Email:    "short@example.com",
			Password: "pw",
		})
		assert.Equal(t, apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})
}

func TestIssueToken(t *testing.T) {
	ctx := context.Background()
	service, auth := newService(t)

	_, err := service.Register(ctx, userapp.RegisterCommand{
		Email:    "login@example.com",
		Password: "testpass123",
	})
	require.NoError(t, err)

	t.Run("returns a usable token for valid credentials", func(t *testing.T) {
		dto, err := service.IssueToken(ctx, userapp.TokenCommand{
			Email:    "login@example.com",
			Password: "testpass123",
		})
		require.NoError(t, err)
		require.NotEmpty(t, dto.Token)
		assert.Equal(t, int64(time.Hour/time.Second), dto.ExpiresIn)

		claims, err := auth.ValidateToken(ctx, dto.Token)
		require.NoError(t, err)
		assert.Equal(t, "login@example.com", claims.Email)
	})

	t.Run("accepts a differently cased domain", func(t *testing.T) {
		_, err := service.IssueToken(ctx, userapp.TokenCommand{
			Email:    "login@EXAMPLE.COM",
			Password: "testpass123",
		})
		assert.NoError(t, err)
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		_, err := service.IssueToken(ctx, userapp.TokenCommand{
			Email:    "login@example.com",
			Password: "wrongpass",
		})
		assert.Equal(t, apperrors.CodeInvalidCredentials, apperrors.GetCode(err))
	})

	t.Run("unknown email yields the same error", func(t *testing.T) {
		_, err := service.IssueToken(ctx, userapp.TokenCommand{
			Email:    "ghost@example.com",
			Password: "testpass123",
		})
		assert.Equal(t, apperrors.CodeInvalidCredentials, apperrors.GetCode(err))
	})
}

func TestUpdateMe(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	registered, err := service.Register(ctx, userapp.RegisterCommand{
		Email:    "me@example.com",
		Name:     "Before",
		Password: "testpass123",
	})
	require.NoError(t, err)

	t.Run("updates only the provided fields", func(t *testing.T) {
		name := "After"
		dto, err := service.UpdateMe(ctx, userapp.UpdateMeCommand{
			UserID: registered.ID,
			Name:   &name,
		})
		require.NoError(t, err)
		assert.Equal(t, "After", dto.Name)
		assert.Equal(t, "me@example.com", dto.Email)
	})

	t.Run("password change takes effect", func(t *testing.T) {
		password := "changed-pass-456"
		_, err := service.UpdateMe(ctx, userapp.UpdateMeCommand{
			UserID:   registered.ID,
			Password: &password,
		})
		require.NoError(t, err)

		_, err = service.IssueToken(ctx, userapp.TokenCommand{
			Email:    "me@example.com",
			Password: "changed-pass-456",
		})
		assert.NoError(t, err)

		_, err = service.IssueToken(ctx, userapp.TokenCommand{
			Email:    "me@example.com",
			Password: "testpass123",
		})
		assert.Error(t, err)
	})
}

func TestCreateSuperuser(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	dto, err := service.CreateSuperuser(ctx, "admin@example.com", "adminpass123")
	require.NoError(t, err)
	assert.NotZero(t, dto.ID)
	assert.Equal(t, "admin@example.com", dto.Email)
}
