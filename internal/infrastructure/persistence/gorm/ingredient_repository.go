package gorm

import (
	"context"
	"errors"

	"github.com/pantrybook/pantrybook/internal/domain/recipe"
	"github.com/pantrybook/pantrybook/internal/ports/outbound"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"gorm.io/gorm"
)

// IngredientRepository implements outbound.IngredientRepository using GORM
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new GORM ingredient repository
func NewIngredientRepository(db *gorm.DB) outbound.IngredientRepository {
	return &IngredientRepository{db: db}
}

// FindByUser returns the owner's ingredients ordered by descending name
func (r *IngredientRepository) FindByUser(ctx context.Context, userID uint) ([]*recipe.Ingredient, error) {
	var models []IngredientModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("list ingredients", err)
	}

	ingredients := make([]*recipe.Ingredient, 0, len(models))
	for i := range models {
		ingredients = append(ingredients, modelToIngredient(&models[i]))
	}
	return ingredients, nil
}

// FindByID retrieves an owned ingredient
func (r *IngredientRepository) FindByID(ctx context.Context, userID, id uint) (*recipe.Ingredient, error) {
	var model IngredientModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewIngredientNotFoundError()
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find ingredient", err)
	}
	return modelToIngredient(&model), nil
}

// Update persists changes to an owned ingredient
func (r *IngredientRepository) Update(ctx context.Context, ingredient *recipe.Ingredient) error {
	result := r.db.WithContext(ctx).Model(&IngredientModel{}).
		Where("id = ? AND user_id = ?", ingredient.ID(), ingredient.UserID()).
		Updates(map[string]interface{}{
			"name":       ingredient.Name(),
			"updated_at": ingredient.UpdatedAt(),
		})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return apperrors.NewValidationError("ingredient with this name already exists")
	}
	if result.Error != nil {
		return apperrors.NewDatabaseError("update ingredient", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewIngredientNotFoundError()
	}
	return nil
}

// Delete removes an owned ingredient and detaches it from every recipe
func (r *IngredientRepository) Delete(ctx context.Context, userID, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model IngredientModel
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&model).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", model.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewIngredientNotFoundError()
	}
	if err != nil {
		return apperrors.NewDatabaseError("delete ingredient", err)
	}
	return nil
}
