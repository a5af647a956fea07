// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/pantrybook/pantrybook/internal/domain/recipe"
	"github.com/pantrybook/pantrybook/internal/domain/user"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *user.User) error
	Update(ctx context.Context, user *user.User) error
	FindByID(ctx context.Context, id uint) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// RecipeFilter restricts a recipe listing to recipes carrying at least one
// of the given tag ids and at least one of the given ingredient ids. A nil
// slice means the corresponding filter is absent.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository defines the interface for recipe persistence.
//
// The owner's user id is a mandatory argument on every query: there is no
// way to read or touch a recipe without saying whose recipes are in scope.
// A lookup that matches a row owned by somebody else behaves exactly like a
// lookup that matches nothing.
//
// Create and Update run as a single transaction that also resolves nested
// tags and ingredients by (owner, name), creating missing rows and
// replacing the relation sets with the resolved rows. A failure anywhere
// rolls back the whole write.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *recipe.Recipe) error
	Update(ctx context.Context, recipe *recipe.Recipe) error
	Delete(ctx context.Context, userID, id uint) error
	FindByID(ctx context.Context, userID, id uint) (*recipe.Recipe, error)

	// FindByUser returns the owner's recipes ordered by descending id
	FindByUser(ctx context.Context, userID uint, filter RecipeFilter) ([]*recipe.Recipe, error)
}

// TagRepository defines the interface for tag persistence.
// Query methods are owner-scoped the same way RecipeRepository is.
type TagRepository interface {
	// FindByUser returns the owner's tags ordered by descending name
	FindByUser(ctx context.Context, userID uint) ([]*recipe.Tag, error)
	FindByID(ctx context.Context, userID, id uint) (*recipe.Tag, error)
	Update(ctx context.Context, tag *recipe.Tag) error
	Delete(ctx context.Context, userID, id uint) error
}

// IngredientRepository defines the interface for ingredient persistence
type IngredientRepository interface {
	// FindByUser returns the owner's ingredients ordered by descending name
	FindByUser(ctx context.Context, userID uint) ([]*recipe.Ingredient, error)
	FindByID(ctx context.Context, userID, id uint) (*recipe.Ingredient, error)
	Update(ctx context.Context, ingredient *recipe.Ingredient) error
	Delete(ctx context.Context, userID, id uint) error
}

// StorageService defines the interface for file storage
type StorageService interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
