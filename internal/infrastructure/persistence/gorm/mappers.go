package gorm

import (
	"github.com/pantrybook/pantrybook/internal/domain/recipe"
	"github.com/pantrybook/pantrybook/internal/domain/user"
)

func userToModel(entity *user.User) *UserModel {
	return &UserModel{
		ID:           entity.ID(),
		Email:        entity.Email(),
		Name:         entity.Name(),
		PasswordHash: entity.PasswordHash(),
		IsActive:     entity.IsActive(),
		IsStaff:      entity.IsStaff(),
		IsSuperuser:  entity.IsSuperuser(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func modelToUser(model *UserModel) *user.User {
	return user.Reconstitute(
		model.ID,
		model.Email,
		model.Name,
		model.PasswordHash,
		model.IsActive,
		model.IsStaff,
		model.IsSuperuser,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func recipeToModel(entity *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:          entity.ID(),
		UserID:      entity.UserID(),
		Title:       entity.Title(),
		TimeMinutes: entity.TimeMinutes(),
		PriceCents:  entity.Price().Cents(),
		Description: entity.Description(),
		Link:        entity.Link(),
		Image:       entity.Image(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func modelToRecipe(model *RecipeModel) *recipe.Recipe {
	tags := make([]recipe.Tag, 0, len(model.Tags))
	for i := range model.Tags {
		tags = append(tags, *modelToTag(&model.Tags[i]))
	}
	ingredients := make([]recipe.Ingredient, 0, len(model.Ingredients))
	for i := range model.Ingredients {
		ingredients = append(ingredients, *modelToIngredient(&model.Ingredients[i]))
	}
	return recipe.ReconstituteRecipe(
		model.ID,
		model.UserID,
		model.Title,
		model.TimeMinutes,
		recipe.PriceFromCents(model.PriceCents),
		model.Description,
		model.Link,
		model.Image,
		tags,
		ingredients,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func modelToTag(model *TagModel) *recipe.Tag {
	return recipe.ReconstituteTag(model.ID, model.UserID, model.Name, model.CreatedAt, model.UpdatedAt)
}

func modelToIngredient(model *IngredientModel) *recipe.Ingredient {
	return recipe.ReconstituteIngredient(model.ID, model.UserID, model.Name, model.CreatedAt, model.UpdatedAt)
}
