package gorm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrybook/pantrybook/internal/domain/recipe"
	"github.com/pantrybook/pantrybook/internal/domain/user"
	persistencegorm "github.com/pantrybook/pantrybook/internal/infrastructure/persistence/gorm"
	"github.com/pantrybook/pantrybook/internal/ports/outbound"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"github.com/pantrybook/pantrybook/test/testutils"
)

func mustPrice(t *testing.T, s string) recipe.Price {
	t.Helper()
	p, err := recipe.ParsePrice(s)
	require.NoError(t, err)
	return p
}

func newRecipe(t *testing.T, userID uint, title string) *recipe.Recipe {
	t.Helper()
	entity, err := recipe.NewRecipe(userID, title, 10, mustPrice(t, "5.25"))
	require.NoError(t, err)
	return entity
}

func withTags(t *testing.T, entity *recipe.Recipe, names ...string) *recipe.Recipe {
	t.Helper()
	tags := make([]recipe.Tag, 0, len(names))
	for _, name := range names {
		tag, err := recipe.NewTag(entity.UserID(), name)
		require.NoError(t, err)
		tags = append(tags, *tag)
	}
	entity.SetTags(tags)
	return entity
}

func withIngredients(t *testing.T, entity *recipe.Recipe, names ...string) *recipe.Recipe {
	t.Helper()
	ingredients := make([]recipe.Ingredient, 0, len(names))
	for _, name := range names {
		ingredient, err := recipe.NewIngredient(entity.UserID(), name)
		require.NoError(t, err)
		ingredients = append(ingredients, *ingredient)
	}
	entity.SetIngredients(ingredients)
	return entity
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	repo := persistencegorm.NewUserRepository(db)

	t.Run("create assigns an id", func(t *testing.T) {
		entity, err := user.NewUser("create@example.com", "sample", "testpass123")
		require.NoError(t, err)

		require.NoError(t, repo.Create(ctx, entity))
		assert.NotZero(t, entity.ID())
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		first, err := user.NewUser("dup@example.com", "sample", "testpass123")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, first))

		second, err := user.NewUser("dup@example.com", "other", "testpass123")
		require.NoError(t, err)

		err = repo.Create(ctx, second)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeEmailAlreadyExists, apperrors.GetCode(err))
	})

	t.Run("find by email round trips the stored hash", func(t *testing.T) {
		entity, err := user.NewUser("roundtrip@example.com", "sample", "testpass123")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, entity))

		loaded, err := repo.FindByEmail(ctx, "roundtrip@example.com")
		require.NoError(t, err)
		assert.Equal(t, entity.ID(), loaded.ID())
		assert.NoError(t, loaded.CheckPassword("testpass123"))
	})

	t.Run("missing user yields not found", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.Equal(t, apperrors.CodeUserNotFound, apperrors.GetCode(err))

		_, err = repo.FindByID(ctx, 9999)
		assert.Equal(t, apperrors.CodeUserNotFound, apperrors.GetCode(err))
	})

	t.Run("update persists name and password changes", func(t *testing.T) {
		entity := testutils.CreateTestUser(t, db)
		require.NoError(t, entity.UpdateName("renamed"))
		require.NoError(t, entity.UpdatePassword("newpass456"))

		require.NoError(t, repo.Update(ctx, entity))

		loaded, err := repo.FindByID(ctx, entity.ID())
		require.NoError(t, err)
		assert.Equal(t, "renamed", loaded.Name())
		assert.NoError(t, loaded.CheckPassword("newpass456"))
	})
}

func TestRecipeRepositoryNestedUpsert(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	repo := persistencegorm.NewRecipeRepository(db)

	owner := testutils.CreateTestUser(t, db)

	t.Run("create resolves nested items and assigns ids", func(t *testing.T) {
		entity := newRecipe(t, owner.ID(), "Thai curry")
		withTags(t, entity, "Thai", "Dinner")
		withIngredients(t, entity, "Coconut milk")

		require.NoError(t, repo.Create(ctx, entity))
		require.NotZero(t, entity.ID())
		require.Len(t, entity.Tags(), 2)
		for _, tag := range entity.Tags() {
			assert.NotZero(t, tag.ID())
		}
		assert.EqualValues(t, 2, testutils.TagCount(t, db))
		assert.EqualValues(t, 1, testutils.IngredientCount(t, db))
	})

	t.Run("same name reuses the existing row", func(t *testing.T) {
		entity := newRecipe(t, owner.ID(), "Pad thai")
		withTags(t, entity, "Thai")

		require.NoError(t, repo.Create(ctx, entity))
		assert.EqualValues(t, 2, testutils.TagCount(t, db), "no new tag row for an existing name")
	})

	t.Run("another owner's same name creates a separate row", func(t *testing.T) {
		other := testutils.CreateTestUser(t, db)
		entity := newRecipe(t, other.ID(), "Green curry")
		withTags(t, entity, "Thai")

		require.NoError(t, repo.Create(ctx, entity))
		assert.EqualValues(t, 3, testutils.TagCount(t, db))
	})

	t.Run("update with an empty set clears the relation", func(t *testing.T) {
		entity := newRecipe(t, owner.ID(), "Lentil soup")
		withTags(t, entity, "Comfort food")
		require.NoError(t, repo.Create(ctx, entity))

		entity.SetTags(nil)
		require.NoError(t, repo.Update(ctx, entity))

		loaded, err := repo.FindByID(ctx, owner.ID(), entity.ID())
		require.NoError(t, err)
		assert.Empty(t, loaded.Tags())

		// the detached tag row itself stays
		var count int64
		require.NoError(t, db.Table("tags").Where("name = ?", "Comfort food").Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}

func TestRecipeRepositoryOwnerScoping(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	repo := persistencegorm.NewRecipeRepository(db)

	owner := testutils.CreateTestUser(t, db)
	intruder := testutils.CreateTestUser(t, db)

	entity := newRecipe(t, owner.ID(), "Secret sauce")
	require.NoError(t, repo.Create(ctx, entity))

	t.Run("another user's lookup reads as absent", func(t *testing.T) {
		_, err := repo.FindByID(ctx, intruder.ID(), entity.ID())
		assert.Equal(t, apperrors.CodeRecipeNotFound, apperrors.GetCode(err))
	})

	t.Run("another user's delete changes nothing", func(t *testing.T) {
		err := repo.Delete(ctx, intruder.ID(), entity.ID())
		assert.Equal(t, apperrors.CodeRecipeNotFound, apperrors.GetCode(err))

		_, err = repo.FindByID(ctx, owner.ID(), entity.ID())
		assert.NoError(t, err)
	})

	t.Run("listing never crosses owners", func(t *testing.T) {
		recipes, err := repo.FindByUser(ctx, intruder.ID(), outbound.RecipeFilter{})
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})

	t.Run("the owner can delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, owner.ID(), entity.ID()))

		_, err := repo.FindByID(ctx, owner.ID(), entity.ID())
		assert.Equal(t, apperrors.CodeRecipeNotFound, apperrors.GetCode(err))
	})
}

func TestRecipeRepositoryListing(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	repo := persistencegorm.NewRecipeRepository(db)

	owner := testutils.CreateTestUser(t, db)

	curry := newRecipe(t, owner.ID(), "Curry")
	withTags(t, curry, "Thai")
	require.NoError(t, repo.Create(ctx, curry))

	stew := newRecipe(t, owner.ID(), "Stew")
	withTags(t, stew, "Comfort food")
	withIngredients(t, stew, "Beef")
	require.NoError(t, repo.Create(ctx, stew))

	toast := newRecipe(t, owner.ID(), "Toast")
	require.NoError(t, repo.Create(ctx, toast))

	t.Run("orders by descending id", func(t *testing.T) {
		recipes, err := repo.FindByUser(ctx, owner.ID(), outbound.RecipeFilter{})
		require.NoError(t, err)
		require.Len(t, recipes, 3)
		assert.Equal(t, "Toast", recipes[0].Title())
		assert.Equal(t, "Stew", recipes[1].Title())
		assert.Equal(t, "Curry", recipes[2].Title())
	})

	t.Run("tag filter matches any listed id", func(t *testing.T) {
		var thaiID, comfortID uint
		require.NoError(t, db.Table("tags").Where("name = ?", "Thai").Select("id").Scan(&thaiID).Error)
		require.NoError(t, db.Table("tags").Where("name = ?", "Comfort food").Select("id").Scan(&comfortID).Error)

		recipes, err := repo.FindByUser(ctx, owner.ID(), outbound.RecipeFilter{
			TagIDs: []uint{thaiID, comfortID},
		})
		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, "Stew", recipes[0].Title())
		assert.Equal(t, "Curry", recipes[1].Title())
	})

	t.Run("tag and ingredient filters intersect", func(t *testing.T) {
		var thaiID, beefID uint
		require.NoError(t, db.Table("tags").Where("name = ?", "Thai").Select("id").Scan(&thaiID).Error)
		require.NoError(t, db.Table("ingredients").Where("name = ?", "Beef").Select("id").Scan(&beefID).Error)

		recipes, err := repo.FindByUser(ctx, owner.ID(), outbound.RecipeFilter{
			TagIDs:        []uint{thaiID},
			IngredientIDs: []uint{beefID},
		})
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})
}

func TestTagRepository(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	recipeRepo := persistencegorm.NewRecipeRepository(db)
	tagRepo := persistencegorm.NewTagRepository(db)

	owner := testutils.CreateTestUser(t, db)

	entity := newRecipe(t, owner.ID(), "Salad")
	withTags(t, entity, "Vegan", "After dinner")
	require.NoError(t, recipeRepo.Create(ctx, entity))

	t.Run("lists by descending name", func(t *testing.T) {
		tags, err := tagRepo.FindByUser(ctx, owner.ID())
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "Vegan", tags[0].Name())
		assert.Equal(t, "After dinner", tags[1].Name())
	})

	t.Run("rename persists", func(t *testing.T) {
		tags, err := tagRepo.FindByUser(ctx, owner.ID())
		require.NoError(t, err)

		tag := tags[0]
		require.NoError(t, tag.Rename("Plant based"))
		require.NoError(t, tagRepo.Update(ctx, tag))

		loaded, err := tagRepo.FindByID(ctx, owner.ID(), tag.ID())
		require.NoError(t, err)
		assert.Equal(t, "Plant based", loaded.Name())
	})

	t.Run("delete detaches the tag from recipes", func(t *testing.T) {
		tags, err := tagRepo.FindByUser(ctx, owner.ID())
		require.NoError(t, err)
		victim := tags[0]

		require.NoError(t, tagRepo.Delete(ctx, owner.ID(), victim.ID()))

		_, err = tagRepo.FindByID(ctx, owner.ID(), victim.ID())
		assert.Equal(t, apperrors.CodeTagNotFound, apperrors.GetCode(err))

		loaded, err := recipeRepo.FindByID(ctx, owner.ID(), entity.ID())
		require.NoError(t, err)
		require.Len(t, loaded.Tags(), 1)
	})

	t.Run("other owners cannot touch the tag", func(t *testing.T) {
		intruder := testutils.CreateTestUser(t, db)
		tags, err := tagRepo.FindByUser(ctx, owner.ID())
		require.NoError(t, err)
		require.NotEmpty(t, tags)

		_, err = tagRepo.FindByID(ctx, intruder.ID(), tags[0].ID())
		assert.Equal(t, apperrors.CodeTagNotFound, apperrors.GetCode(err))

		err = tagRepo.Delete(ctx, intruder.ID(), tags[0].ID())
		assert.Equal(t, apperrors.CodeTagNotFound, apperrors.GetCode(err))
	})
}

func TestTagRenameNameCollision(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	recipeRepo := persistencegorm.NewRecipeRepository(db)
	tagRepo := persistencegorm.NewTagRepository(db)

	owner := testutils.CreateTestUser(t, db)

	entity := newRecipe(t, owner.ID(), "Curry")
	withTags(t, entity, "Dinner", "Thai")
	require.NoError(t, recipeRepo.Create(ctx, entity))

	tags, err := tagRepo.FindByUser(ctx, owner.ID())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	thai := tags[0]
	require.Equal(t, "Thai", thai.Name())

	t.Run("renaming onto an existing name is a validation failure", func(t *testing.T) {
		require.NoError(t, thai.Rename("Dinner"))
		err := tagRepo.Update(ctx, thai)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeValidationFailed, apperrors.GetCode(err))

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Less(t, appErr.StatusCode(), 500)
	})

	t.Run("the stored name is untouched after the failure", func(t *testing.T) {
		loaded, err := tagRepo.FindByID(ctx, owner.ID(), thai.ID())
		require.NoError(t, err)
		assert.Equal(t, "Thai", loaded.Name())
	})

	t.Run("another owner can hold the same name", func(t *testing.T) {
		other := testutils.CreateTestUser(t, db)
		otherRecipe := newRecipe(t, other.ID(), "Stew")
		withTags(t, otherRecipe, "Leftovers")
		require.NoError(t, recipeRepo.Create(ctx, otherRecipe))

		otherTags, err := tagRepo.FindByUser(ctx, other.ID())
		require.NoError(t, err)
		require.Len(t, otherTags, 1)

		require.NoError(t, otherTags[0].Rename("Dinner"))
		require.NoError(t, tagRepo.Update(ctx, otherTags[0]))
	})
}

func TestIngredientRenameNameCollision(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	recipeRepo := persistencegorm.NewRecipeRepository(db)
	ingredientRepo := persistencegorm.NewIngredientRepository(db)

	owner := testutils.CreateTestUser(t, db)

	entity := newRecipe(t, owner.ID(), "Soup")
	withIngredients(t, entity, "Salt", "Water")
	require.NoError(t, recipeRepo.Create(ctx, entity))

	ingredients, err := ingredientRepo.FindByUser(ctx, owner.ID())
	require.NoError(t, err)
	require.Len(t, ingredients, 2)
	water := ingredients[0]
	require.Equal(t, "Water", water.Name())

	require.NoError(t, water.Rename("Salt"))
	err = ingredientRepo.Update(ctx, water)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.GetCode(err))

	loaded, err := ingredientRepo.FindByID(ctx, owner.ID(), water.ID())
	require.NoError(t, err)
	assert.Equal(t, "Water", loaded.Name())
}

func TestIngredientRepository(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	recipeRepo := persistencegorm.NewRecipeRepository(db)
	ingredientRepo := persistencegorm.NewIngredientRepository(db)

	owner := testutils.CreateTestUser(t, db)

	entity := newRecipe(t, owner.ID(), "Broth")
	withIngredients(t, entity, "Salt", "Water")
	require.NoError(t, recipeRepo.Create(ctx, entity))

	t.Run("lists by descending name", func(t *testing.T) {
		ingredients, err := ingredientRepo.FindByUser(ctx, owner.ID())
		require.NoError(t, err)
		require.Len(t, ingredients, 2)
		assert.Equal(t, "Water", ingredients[0].Name())
		assert.Equal(t, "Salt", ingredients[1].Name())
	})

	t.Run("rename and delete behave like tags", func(t *testing.T) {
		ingredients, err := ingredientRepo.FindByUser(ctx, owner.ID())
		require.NoError(t, err)

		ingredient := ingredients[1]
		require.NoError(t, ingredient.Rename("Sea salt"))
		require.NoError(t, ingredientRepo.Update(ctx, ingredient))

		loaded, err := ingredientRepo.FindByID(ctx, owner.ID(), ingredient.ID())
		require.NoError(t, err)
		assert.Equal(t, "Sea salt", loaded.Name())

		require.NoError(t, ingredientRepo.Delete(ctx, owner.ID(), ingredient.ID()))
		_, err = ingredientRepo.FindByID(ctx, owner.ID(), ingredient.ID())
		assert.Equal(t, apperrors.CodeIngredientNotFound, apperrors.GetCode(err))
	})
}
