// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
)

// RecipeService defines the use cases for recipe, tag and ingredient
// management. This is the primary port that HTTP handlers use. Every
// operation is scoped to the calling user; there is no way to reach
// another user's rows through this interface.
type RecipeService interface {
	// Commands - operations that modify state
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, userID, recipeID uint) error
	UploadRecipeImage(ctx context.Context, cmd UploadImageCommand) (*RecipeDTO, error)

	// Queries - operations that read state
	GetRecipeByID(ctx context.Context, userID, recipeID uint) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, userID uint, query ListRecipesQuery) ([]RecipeSummaryDTO, error)

	// Tag management
	ListTags(ctx context.Context, userID uint) ([]TagDTO, error)
	UpdateTag(ctx context.Context, userID, tagID uint, name string) (*TagDTO, error)
	DeleteTag(ctx context.Context, userID, tagID uint) error

	// Ingredient management
	ListIngredients(ctx context.Context, userID uint) ([]IngredientDTO, error)
	UpdateIngredient(ctx context.Context, userID, ingredientID uint, name string) (*IngredientDTO, error)
	DeleteIngredient(ctx context.Context, userID, ingredientID uint) error
}

// Command objects for operations

// NamedItemCommand names a nested tag or ingredient to attach. The item is
// reused when a row with this name already exists for the owner, otherwise
// created.
type NamedItemCommand struct {
	Name string
}

// CreateRecipeCommand contains data for creating a new recipe
type CreateRecipeCommand struct {
	UserID      uint
	Title       string
	TimeMinutes int
	Price       string
	Description string
	Link        string
	Tags        []NamedItemCommand
	Ingredients []NamedItemCommand
}

// UpdateRecipeCommand contains data for updating a recipe. Nil pointer
// fields are left untouched; a non-nil empty Tags or Ingredients slice
// clears the relation. There is deliberately no owner field: the owner set
// at creation never changes.
type UpdateRecipeCommand struct {
	RecipeID    uint
	UserID      uint
	Title       *string
	TimeMinutes *int
	Price       *string
	Description *string
	Link        *string
	Tags        *[]NamedItemCommand
	Ingredients *[]NamedItemCommand
}

// UploadImageCommand carries an uploaded image for an owned recipe
type UploadImageCommand struct {
	RecipeID    uint
	UserID      uint
	Filename    string
	ContentType string
	Data        []byte
}

// ListRecipesQuery carries optional id-set filters for recipe listing
type ListRecipesQuery struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// Data transfer objects

// RecipeSummaryDTO is the list serialization of a recipe
type RecipeSummaryDTO struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       string          `json:"price"`
	Link        string          `json:"link"`
	Tags        []TagDTO        `json:"tags"`
	Ingredients []IngredientDTO `json:"ingredients"`
}

// RecipeDTO is the detail serialization of a recipe
type RecipeDTO struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       string          `json:"price"`
	Link        string          `json:"link"`
	Tags        []TagDTO        `json:"tags"`
	Ingredients []IngredientDTO `json:"ingredients"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
}

// TagDTO represents a tag in API responses
type TagDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IngredientDTO represents an ingredient in API responses
type IngredientDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
