package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pantrybook/pantrybook/internal/domain/recipe"
	"github.com/pantrybook/pantrybook/internal/domain/user"
	"github.com/pantrybook/pantrybook/internal/infrastructure/config"
	persistencegorm "github.com/pantrybook/pantrybook/internal/infrastructure/persistence/gorm"
)

// NewTestConfig returns a configuration suitable for tests
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		App: config.AppConfig{
			Name:        "pantrybook",
			Version:     "test",
			Environment: "development",
			LogLevel:    "error",
			LogFormat:   "console",
		},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-key-for-testing-only-32-bytes",
			JWTExpiration: time.Hour,
		},
		Storage: config.StorageConfig{
			LocalPath:    t.TempDir(),
			MaxFileSize:  5 * 1024 * 1024,
			AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		},
	}
}

// RandomEmail generates a unique random email address
func RandomEmail() string {
	return fmt.Sprintf("%s-%s", gofakeit.LetterN(6), gofakeit.Email())
}

// CreateTestUser persists a user built from random data and returns it
func CreateTestUser(t *testing.T, db *gorm.DB) *user.User {
	t.Helper()
	return CreateTestUserWithPassword(t, db, "testpass123")
}

// CreateTestUserWithPassword persists a user with the given password
func CreateTestUserWithPassword(t *testing.T, db *gorm.DB, password string) *user.User {
	t.Helper()

	entity, err := user.NewUser(RandomEmail(), gofakeit.Name(), password)
	require.NoError(t, err)

	repo := persistencegorm.NewUserRepository(db)
	require.NoError(t, repo.Create(context.Background(), entity))
	require.NotZero(t, entity.ID())
	return entity
}

// RandomRecipe builds an unsaved recipe entity owned by userID
func RandomRecipe(t *testing.T, userID uint) *recipe.Recipe {
	t.Helper()

	price, err := recipe.ParsePrice(fmt.Sprintf("%d.%02d", gofakeit.Number(1, 99), gofakeit.Number(0, 99)))
	require.NoError(t, err)

	entity, err := recipe.NewRecipe(userID, gofakeit.Dinner(), gofakeit.Number(5, 120), price)
	require.NoError(t, err)
	return entity
}
