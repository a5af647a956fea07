// Package testutils provides shared helpers for tests
package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	persistencegorm "github.com/pantrybook/pantrybook/internal/infrastructure/persistence/gorm"
	sqlitedb "github.com/pantrybook/pantrybook/internal/infrastructure/persistence/sqlite"
)

// NewTestDB opens a throwaway in-memory database with the full schema
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, sqlitedb.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CountRows counts the rows of a model in the test database
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

// TagCount counts tag rows
func TagCount(t *testing.T, db *gorm.DB) int64 {
	return CountRows(t, db, &persistencegorm.TagModel{})
}

// IngredientCount counts ingredient rows
func IngredientCount(t *testing.T, db *gorm.DB) int64 {
	return CountRows(t, db, &persistencegorm.IngredientModel{})
}
