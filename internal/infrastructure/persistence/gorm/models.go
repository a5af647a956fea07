// Package gorm provides GORM-based implementations of the outbound
// repository ports.
package gorm

import (
	"time"
)

// UserModel represents the users table
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Name         string `gorm:"size:255"`
	PasswordHash string `gorm:"size:255;not null"`
	IsActive     bool   `gorm:"default:true"`
	IsStaff      bool   `gorm:"default:false"`
	IsSuperuser  bool   `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// RecipeModel represents the recipes table. Tags and ingredients hang off
// join tables so a row can be shared by many recipes of the same owner.
type RecipeModel struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Title       string `gorm:"size:255;not null"`
	TimeMinutes int    `gorm:"not null"`
	PriceCents  int64  `gorm:"not null"`
	Description string `gorm:"type:text"`
	Link        string `gorm:"size:255"`
	Image       string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tags        []TagModel        `gorm:"many2many:recipe_tags;joinForeignKey:RecipeID;joinReferences:TagID"`
	Ingredients []IngredientModel `gorm:"many2many:recipe_ingredients;joinForeignKey:RecipeID;joinReferences:IngredientID"`
}

// TableName returns the table name for RecipeModel
func (RecipeModel) TableName() string {
	return "recipes"
}

// TagModel represents the tags table. The composite unique index makes
// (owner, name) the identity a nested write resolves against.
type TagModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:idx_tags_user_name;not null"`
	Name      string `gorm:"uniqueIndex:idx_tags_user_name;size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for TagModel
func (TagModel) TableName() string {
	return "tags"
}

// IngredientModel represents the ingredients table
type IngredientModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:idx_ingredients_user_name;not null"`
	Name      string `gorm:"uniqueIndex:idx_ingredients_user_name;size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for IngredientModel
func (IngredientModel) TableName() string {
	return "ingredients"
}
