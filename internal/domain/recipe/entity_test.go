package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPrice(t *testing.T, s string) Price {
	t.Helper()
	p, err := ParsePrice(s)
	require.NoError(t, err)
	return p
}

func TestNewRecipe(t *testing.T) {
	t.Run("creates a valid recipe", func(t *testing.T) {
		r, err := NewRecipe(1, "Sample recipe", 10, mustPrice(t, "5.25"))
		require.NoError(t, err)

		assert.Equal(t, uint(1), r.UserID())
		assert.Equal(t, "Sample recipe", r.Title())
		assert.Equal(t, 10, r.TimeMinutes())
		assert.Equal(t, "5.25", r.Price().String())
		assert.Empty(t, r.Tags())
		assert.Empty(t, r.Ingredients())
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		_, err := NewRecipe(1, "", 10, mustPrice(t, "5.25"))
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("rejects negative time", func(t *testing.T) {
		_, err := NewRecipe(1, "Sample recipe", -1, mustPrice(t, "5.25"))
		assert.ErrorIs(t, err, ErrNegativeTime)
	})
}

func TestRecipeUpdates(t *testing.T) {
	r, err := NewRecipe(1, "Original title", 10, mustPrice(t, "5.25"))
	require.NoError(t, err)

	require.NoError(t, r.UpdateTitle("New title"))
	assert.Equal(t, "New title", r.Title())

	assert.ErrorIs(t, r.UpdateTitle(""), ErrTitleRequired)
	assert.Equal(t, "New title", r.Title())

	require.NoError(t, r.UpdateTimeMinutes(25))
	assert.Equal(t, 25, r.TimeMinutes())
	assert.ErrorIs(t, r.UpdateTimeMinutes(-5), ErrNegativeTime)

	r.UpdatePrice(mustPrice(t, "9.99"))
	assert.Equal(t, "9.99", r.Price().String())

	r.UpdateDescription("A longer description")
	assert.Equal(t, "A longer description", r.Description())

	require.NoError(t, r.UpdateLink("https://example.com/recipe.pdf"))
	assert.Equal(t, "https://example.com/recipe.pdf", r.Link())
}

func TestRecipeSetTagsReplacesSet(t *testing.T) {
	r, err := NewRecipe(1, "Sample recipe", 10, mustPrice(t, "5.25"))
	require.NoError(t, err)

	vegan, err := NewTag(1, "Vegan")
	require.NoError(t, err)
	dessert, err := NewTag(1, "Dessert")
	require.NoError(t, err)

	r.SetTags([]Tag{*vegan, *dessert})
	require.Len(t, r.Tags(), 2)

	r.SetTags([]Tag{*vegan})
	require.Len(t, r.Tags(), 1)
	assert.Equal(t, "Vegan", r.Tags()[0].Name())

	r.SetTags(nil)
	assert.Empty(t, r.Tags())
}

func TestTagValidation(t *testing.T) {
	_, err := NewTag(1, "")
	assert.ErrorIs(t, err, ErrNameRequired)

	tag, err := NewTag(1, "Vegan")
	require.NoError(t, err)

	require.NoError(t, tag.Rename("Plant based"))
	assert.Equal(t, "Plant based", tag.Name())
	assert.ErrorIs(t, tag.Rename(""), ErrNameRequired)
}

func TestIngredientValidation(t *testing.T) {
	_, err := NewIngredient(1, "")
	assert.ErrorIs(t, err, ErrNameRequired)

	ingredient, err := NewIngredient(1, "Salt")
	require.NoError(t, err)

	require.NoError(t, ingredient.Rename("Sea salt"))
	assert.Equal(t, "Sea salt", ingredient.Name())
}
