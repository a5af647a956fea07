// Package sqlite provides the SQLite database connection used in
// development and tests.
package sqlite

import (
	"fmt"

	"github.com/pantrybook/pantrybook/internal/infrastructure/config"
	persistencegorm "github.com/pantrybook/pantrybook/internal/infrastructure/persistence/gorm"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a SQLite database at the configured path. Passing
// ":memory:" yields a throwaway in-memory database; tests use that.
func NewDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.GetDSN()), &gorm.Config{
		Logger:         gormLogLevel(cfg),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	if cfg.IsDevelopment() {
		if err := SeedDatabase(db); err != nil {
			log.Warn("Failed to seed demo data", zap.Error(err))
		}
	}

	log.Info("SQLite database ready", zap.String("path", cfg.Database.Path))
	return db, nil
}

// AutoMigrate creates or updates the schema for every persisted model
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&persistencegorm.UserModel{},
		&persistencegorm.RecipeModel{},
		&persistencegorm.TagModel{},
		&persistencegorm.IngredientModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SeedDatabase inserts demo accounts and recipes for local development.
// It is a no-op once any user exists.
func SeedDatabase(db *gorm.DB) error {
	var userCount int64
	db.Model(&persistencegorm.UserModel{}).Count(&userCount)
	if userCount > 0 {
		return nil
	}

	// bcrypt hash of "password"
	const demoHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

	demoUser := persistencegorm.UserModel{
		Email:        "demo@pantrybook.dev",
		Name:         "Demo Cook",
		PasswordHash: demoHash,
		IsActive:     true,
	}
	if err := db.Create(&demoUser).Error; err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	admin := persistencegorm.UserModel{
		Email:        "admin@pantrybook.dev",
		Name:         "Admin",
		PasswordHash: demoHash,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	recipes := []persistencegorm.RecipeModel{
		{
			UserID:      demoUser.ID,
			Title:       "Thai prawn red curry",
			TimeMinutes: 35,
			PriceCents:  1250,
			Description: "Quick weeknight curry with jasmine rice.",
			Tags: []persistencegorm.TagModel{
				{UserID: demoUser.ID, Name: "Dinner"},
				{UserID: demoUser.ID, Name: "Thai"},
			},
			Ingredients: []persistencegorm.IngredientModel{
				{UserID: demoUser.ID, Name: "Prawns"},
				{UserID: demoUser.ID, Name: "Coconut milk"},
			},
		},
		{
			UserID:      demoUser.ID,
			Title:       "Avocado toast",
			TimeMinutes: 10,
			PriceCents:  450,
			Description: "Sourdough, smashed avocado, chilli flakes.",
			Ingredients: []persistencegorm.IngredientModel{
				{UserID: demoUser.ID, Name: "Avocado"},
				{UserID: demoUser.ID, Name: "Sourdough"},
			},
		},
	}
	for i := range recipes {
		if err := db.Create(&recipes[i]).Error; err != nil {
			return fmt.Errorf("failed to seed demo recipes: %w", err)
		}
	}

	return nil
}

func gormLogLevel(cfg *config.Config) logger.Interface {
	if cfg.IsDevelopment() {
		return logger.Default.LogMode(logger.Info)
	}
	return logger.Default.LogMode(logger.Warn)
}
