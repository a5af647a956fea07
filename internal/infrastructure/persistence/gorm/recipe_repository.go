package gorm

import (
	"context"
	"errors"

	"github.com/pantrybook/pantrybook/internal/domain/recipe"
	"github.com/pantrybook/pantrybook/internal/ports/outbound"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"gorm.io/gorm"
)

// RecipeRepository implements outbound.RecipeRepository using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new GORM recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create persists a recipe together with its nested tags and ingredients.
// Nested items are resolved by (owner, name) inside the same transaction:
// an existing row is reused, a missing one is created. Any failure rolls
// back the recipe row and every resolved item.
func (r *RecipeRepository) Create(ctx context.Context, entity *recipe.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tagModels, err := resolveTags(tx, entity.UserID(), entity.Tags())
		if err != nil {
			return err
		}
		ingredientModels, err := resolveIngredients(tx, entity.UserID(), entity.Ingredients())
		if err != nil {
			return err
		}

		model := recipeToModel(entity)
		if err := tx.Omit("Tags", "Ingredients").Create(model).Error; err != nil {
			return err
		}
		if err := tx.Model(model).Association("Tags").Replace(tagModels); err != nil {
			return err
		}
		if err := tx.Model(model).Association("Ingredients").Replace(ingredientModels); err != nil {
			return err
		}

		entity.SetID(model.ID)
		applyResolved(entity, tagModels, ingredientModels)
		return nil
	})
	if err != nil {
		return apperrors.NewDatabaseError("create recipe", err)
	}
	return nil
}

// Update persists changes to an owned recipe, replacing its tag and
// ingredient sets with rows resolved by (owner, name). The lookup is
// owner-scoped, so a recipe owned by somebody else reads as absent.
func (r *RecipeRepository) Update(ctx context.Context, entity *recipe.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing RecipeModel
		if err := tx.Where("id = ? AND user_id = ?", entity.ID(), entity.UserID()).
			First(&existing).Error; err != nil {
			return err
		}

		tagModels, err := resolveTags(tx, entity.UserID(), entity.Tags())
		if err != nil {
			return err
		}
		ingredientModels, err := resolveIngredients(tx, entity.UserID(), entity.Ingredients())
		if err != nil {
			return err
		}

		model := recipeToModel(entity)
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"title":        model.Title,
			"time_minutes": model.TimeMinutes,
			"price_cents":  model.PriceCents,
			"description":  model.Description,
			"link":         model.Link,
			"image":        model.Image,
			"updated_at":   model.UpdatedAt,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&existing).Association("Tags").Replace(tagModels); err != nil {
			return err
		}
		if err := tx.Model(&existing).Association("Ingredients").Replace(ingredientModels); err != nil {
			return err
		}

		applyResolved(entity, tagModels, ingredientModels)
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewRecipeNotFoundError()
	}
	if err != nil {
		return apperrors.NewDatabaseError("update recipe", err)
	}
	return nil
}

// Delete removes an owned recipe and its relation rows
func (r *RecipeRepository) Delete(ctx context.Context, userID, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model RecipeModel
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&model).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", model.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id = ?", model.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewRecipeNotFoundError()
	}
	if err != nil {
		return apperrors.NewDatabaseError("delete recipe", err)
	}
	return nil
}

// FindByID retrieves an owned recipe with its tags and ingredients loaded
func (r *RecipeRepository) FindByID(ctx context.Context, userID, id uint) (*recipe.Recipe, error) {
	var model RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewRecipeNotFoundError()
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find recipe", err)
	}
	return modelToRecipe(&model), nil
}

// FindByUser returns the owner's recipes ordered by descending id. Each
// non-empty id set restricts the result to recipes carrying at least one
// of the listed items; both filters together intersect.
func (r *RecipeRepository) FindByUser(ctx context.Context, userID uint, filter outbound.RecipeFilter) ([]*recipe.Recipe, error) {
	query := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		query = query.Where(
			"id IN (SELECT recipe_id FROM recipe_tags WHERE tag_id IN ?)", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.Where(
			"id IN (SELECT recipe_id FROM recipe_ingredients WHERE ingredient_id IN ?)", filter.IngredientIDs)
	}

	var models []RecipeModel
	if err := query.Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.NewDatabaseError("list recipes", err)
	}

	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, modelToRecipe(&models[i]))
	}
	return recipes, nil
}

// resolveTags maps tag names to rows owned by userID, creating missing
// rows. Duplicate names collapse to a single row.
func resolveTags(tx *gorm.DB, userID uint, tags []recipe.Tag) ([]TagModel, error) {
	models := make([]TagModel, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag.Name()] {
			continue
		}
		seen[tag.Name()] = true

		var model TagModel
		if err := tx.Where(TagModel{UserID: userID, Name: tag.Name()}).
			FirstOrCreate(&model).Error; err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	return models, nil
}

func resolveIngredients(tx *gorm.DB, userID uint, ingredients []recipe.Ingredient) ([]IngredientModel, error) {
	models := make([]IngredientModel, 0, len(ingredients))
	seen := make(map[string]bool, len(ingredients))
	for _, ingredient := range ingredients {
		if seen[ingredient.Name()] {
			continue
		}
		seen[ingredient.Name()] = true

		var model IngredientModel
		if err := tx.Where(IngredientModel{UserID: userID, Name: ingredient.Name()}).
			FirstOrCreate(&model).Error; err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	return models, nil
}

// applyResolved writes the database identities of resolved tags and
// ingredients back onto the entity so callers see real ids.
func applyResolved(entity *recipe.Recipe, tagModels []TagModel, ingredientModels []IngredientModel) {
	tags := make([]recipe.Tag, 0, len(tagModels))
	for i := range tagModels {
		tags = append(tags, *modelToTag(&tagModels[i]))
	}
	entity.SetTags(tags)

	ingredients := make([]recipe.Ingredient, 0, len(ingredientModels))
	for i := range ingredientModels {
		ingredients = append(ingredients, *modelToIngredient(&ingredientModels[i]))
	}
	entity.SetIngredients(ingredients)
}
