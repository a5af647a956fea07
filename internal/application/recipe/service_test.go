package recipe_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	recipeapp "github.com/pantrybook/pantrybook/internal/application/recipe"
	"github.com/pantrybook/pantrybook/internal/infrastructure/persistence/gorm"
	"github.com/pantrybook/pantrybook/internal/infrastructure/storage"
	"github.com/pantrybook/pantrybook/internal/ports/inbound"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"github.com/pantrybook/pantrybook/test/testutils"
	gormdb "gorm.io/gorm"
)

// pngBytes is a minimal payload the content sniffer identifies as image/png
var pngBytes = []byte("\x89PNG\r\n\x1a\nrest-of-the-file")

func newService(t *testing.T) (inbound.RecipeService, *gormdb.DB) {
	t.Helper()

	db := testutils.NewTestDB(t)
	cfg := testutils.NewTestConfig(t)
	logger := zap.NewNop()

	store, err := storage.NewLocalStorage(cfg.Storage.LocalPath, logger)
	require.NoError(t, err)

	service := recipeapp.NewService(
		gorm.NewRecipeRepository(db),
		gorm.NewTagRepository(db),
		gorm.NewIngredientRepository(db),
		store,
		cfg,
		logger,
	)
	return service, db
}

func TestCreateRecipe(t *testing.T) {
	ctx := context.Background()
	service, db := newService(t)
	owner := testutils.CreateTestUser(t, db)

	t.Run("creates a recipe with nested items", func(t *testing.T) {
		dto, err := service.CreateRecipe(ctx, inbound.CreateRecipeCommand{
			UserID:      owner.ID(),
			Title:       "Thai prawn curry",
			TimeMinutes: 30,
			Price:       "12.50",
			Tags: []inbound.NamedItemCommand{
				{Name: "Thai"}, {Name: "Dinner"},
			},
			Ingredients: []inbound.NamedItemCommand{
				{Name: "Prawns"},
			},
		})
		require.NoError(t, err)
		assert.NotZero(t, dto.ID)
		assert.Equal(t, "12.50", dto.Price)
		assert.Len(t, dto.Tags, 2)
		assert.Len(t, dto.Ingredients, 1)
		for _, tag := range dto.Tags {
			assert.NotZero(t, tag.ID)
		}
	})

	t.Run("an existing tag name is reused, not duplicated", func(t *testing.T) {
		before := testutils.TagCount(t, db)

		_, err := service.CreateRecipe(ctx, inbound.CreateRecipeCommand{
			UserID:      owner.ID(),
			Title:       "Pad thai",
			TimeMinutes: 20,
			Price:       "9.00",
			Tags: []inbound.NamedItemCommand{
				{Name: "Thai"}, {Name: "Street food"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, before+1, testutils.TagCount(t, db))
	})

	t.Run("rejects a bad price", func(t *testing.T) {
		_, err := service.CreateRecipe(ctx, inbound.CreateRecipeCommand{
			UserID:      owner.ID(),
			Title:       "Broken",
			TimeMinutes: 5,
			Price:       "not-a-price",
		})
		assert.Equal(t, apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})

	t.Run("rejects a nameless nested tag", func(t *testing.T) {
		_, err := service.CreateRecipe(ctx, inbound.CreateRecipeCommand{
			UserID:      owner.ID(),
			Title:       "Broken",
			TimeMinutes: 5,
			Price:       "5.00",
			Tags:        []inbound.NamedItemCommand{{Name: ""}},
		})
		assert.Equal(t, apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})
}

func TestUpdateRecipePartialSemantics(t *testing.T) {
	ctx := context.Background()
	service, db := newService(t)
	owner := testutils.CreateTestUser(t, db)

	created, err := service.CreateRecipe(ctx, inbound.CreateRecipeCommand{
		UserID:      owner.ID(),
		Title:       "Original title",
		TimeMinutes: 30,
		Price:       "10.00",
		Link:        "https://example.com/original.pdf",
		Tags:        []inbound.NamedItemCommand{{Name: "Dinner"}},
	})
	require.NoError(t, err)

	t.Run("patching the title leaves everything else alone", func(t *testing.T) {
		title := "Patched title"
		dto, err := service.UpdateRecipe(ctx, inbound.UpdateRecipeCommand{
			RecipeID: created.ID,
			UserID:   owner.ID(),
			Title:    &title,
		})
		require.NoError(t, err)
		assert.Equal(t, "Patched title", dto.Title)
		assert.Equal(t, "https://example.com/original.pdf", dto.Link)
		assert.Equal(t, "10.00", dto.Price)
		assert.Len(t, dto.Tags, 1)
	})

	t.Run("an empty tag list clears the relation", func(t *testing.T) {
		empty := []inbound.NamedItemCommand{}
		dto, err := service.UpdateRecipe(ctx, inbound.UpdateRecipeCommand{
			RecipeID: created.ID,
			UserID:   owner.ID(),
			Tags:     &empty,
		})
		require.NoError(t, err)
		assert.Empty(t, dto.Tags)
	})

	t.Run("replacing tags swaps the whole set", func(t *testing.T) {
		replacement := []inbound.NamedItemCommand{{Name: "Lunch"}}
		dto, err := service.UpdateRecipe(ctx, inbound.UpdateRecipeCommand{
			RecipeID: created.ID,
			UserID:   owner.ID(),
			Tags:     &replacement,
		})
		require.NoError(t, err)
		require.Len(t, dto.Tags, 1)
		assert.Equal(t, "Lunch", dto.Tags[0].Name)
	})

	t.Run("another user's recipe reads as absent", func(t *testing.T) {
		intruder := testutils.CreateTestUser(t, db)
		title := "Hijacked"
		_, err := service.UpdateRecipe(ctx, inbound.UpdateRecipeCommand{
			RecipeID: created.ID,
			UserID:   intruder.ID(),
			Title:    &title,
		})
		assert.Equal(t, apperrors.CodeRecipeNotFound, apperrors.GetCode(err))
	})
}

func TestListRecipes(t *testing.T) {
	ctx := context.Background()
	service, db := newService(t)
	owner := testutils.CreateTestUser(t, db)

	first, err := service.CreateRecipe(ctx, inbound.CreateRecipeCommand{
		UserID: owner.ID(), Title: "First", TimeMinutes: 5, Price: "1.00",
		Tags: []inbound.NamedItemCommand{{Name: "Breakfast"}},
	})
	require.NoError(t, err)

	second, err := service.CreateRecipe(ctx, inbound.CreateRecipeCommand{
		UserID: owner.ID(), Title: "Second", TimeMinutes: 5, Price: "2.00",
	})
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		recipes, err := service.ListRecipes(ctx, owner.ID(), inbound.ListRecipesQuery{})
		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, second.ID, recipes[0].ID)
		assert.Equal(t, first.ID, recipes[1].ID)
	})

	t.Run("filter by tag id", func(t *testing.T) {
		tags, err := service.ListTags(ctx, owner.ID())
		require.NoError(t, err)
		require.Len(t, tags, 1)

		recipes, err := service.ListRecipes(ctx, owner.ID(), inbound.ListRecipesQuery{
			TagIDs: []uint{tags[0].ID},
		})
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, first.ID, recipes[0].ID)
	})
}

func TestUploadRecipeImage(t *testing.T) {
	ctx := context.Background()
	service, db := newService(t)
	owner := testutils.CreateTestUser(t, db)

	created, err := service.CreateRecipe(ctx, inbound.CreateRecipeCommand{
		UserID: owner.ID(), Title: "Photogenic", TimeMinutes: 5, Price: "3.00",
	})
	require.NoError(t, err)

	t.Run("stores a real image and records the path", func(t *testing.T) {
		dto, err := service.UploadRecipeImage(ctx, inbound.UploadImageCommand{
			RecipeID: created.ID,
			UserID:   owner.ID(),
			Filename: "photo.png",
			Data:     pngBytes,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, dto.Image)

		loaded, err := service.GetRecipeByID(ctx, owner.ID(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, dto.Image, loaded.Image)
	})

	t.Run("rejects a non-image payload", func(t *testing.T) {
		_, err := service.UploadRecipeImage(ctx, inbound.UploadImageCommand{
			RecipeID: created.ID,
			UserID:   owner.ID(),
			Filename: "notimage.txt",
			Data:     []byte("plain text, not an image"),
		})
		assert.Equal(t, apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})

	t.Run("rejects an empty payload", func(t *testing.T) {
		_, err := service.UploadRecipeImage(ctx, inbound.UploadImageCommand{
			RecipeID: created.ID,
			UserID:   owner.ID(),
			Filename: "empty.png",
			Data:     nil,
		})
		assert.Equal(t, apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})

	t.Run("another user's upload reads as absent", func(t *testing.T) {
		intruder := testutils.CreateTestUser(t, db)
		_, err := service.UploadRecipeImage(ctx, inbound.UploadImageCommand{
			RecipeID: created.ID,
			UserID:   intruder.ID(),
			Filename: "photo.png",
			Data:     pngBytes,
		})
		assert.Equal(t, apperrors.CodeRecipeNotFound, apperrors.GetCode(err))
	})
}

func TestDeleteRecipe(t *testing.T) {
	ctx := context.Background()
	service, db := newService(t)
	owner := testutils.CreateTestUser(t, db)

	created, err := service.CreateRecipe(ctx, inbound.CreateRecipeCommand{
		UserID: owner.ID(), Title: "Doomed", TimeMinutes: 5, Price: "1.00",
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteRecipe(ctx, owner.ID(), created.ID))

	_, err = service.GetRecipeByID(ctx, owner.ID(), created.ID)
	assert.Equal(t, apperrors.CodeRecipeNotFound, apperrors.GetCode(err))
}
