// Package recipe contains the core domain logic for recipe management.
// Recipes, tags and ingredients are owner-scoped: every entity belongs to
// exactly one user and is only ever visible through that user's session.
package recipe

import (
	"time"
)

// Recipe represents the core recipe entity in our domain.
// The owner is fixed at creation time; there is intentionally no way to
// reassign userID on an existing recipe.
type Recipe struct {
	id     uint
	userID uint

	title       string
	timeMinutes int
	price       Price
	description string
	link        string
	image       string

	tags        []Tag
	ingredients []Ingredient

	createdAt time.Time
	updatedAt time.Time
}

// NewRecipe creates a new Recipe with validation
func NewRecipe(userID uint, title string, timeMinutes int, price Price) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	if timeMinutes < 0 {
		return nil, ErrNegativeTime
	}

	now := time.Now()
	return &Recipe{
		userID:      userID,
		title:       title,
		timeMinutes: timeMinutes,
		price:       price,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstituteRecipe rebuilds a recipe entity from persisted state
func ReconstituteRecipe(
	id, userID uint,
	title string,
	timeMinutes int,
	price Price,
	description, link, image string,
	tags []Tag,
	ingredients []Ingredient,
	createdAt, updatedAt time.Time,
) *Recipe {
	return &Recipe{
		id:          id,
		userID:      userID,
		title:       title,
		timeMinutes: timeMinutes,
		price:       price,
		description: description,
		link:        link,
		image:       image,
		tags:        tags,
		ingredients: ingredients,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uint {
	return r.id
}

// SetID assigns the storage-generated identifier after the first insert
func (r *Recipe) SetID(id uint) {
	r.id = id
}

// UserID returns the owner's user ID
func (r *Recipe) UserID() uint {
	return r.userID
}

// Title returns the recipe's title
func (r *Recipe) Title() string {
	return r.title
}

// TimeMinutes returns the preparation time in minutes
func (r *Recipe) TimeMinutes() int {
	return r.timeMinutes
}

// Price returns the recipe's price
func (r *Recipe) Price() Price {
	return r.price
}

// Description returns the recipe's free-text description
func (r *Recipe) Description() string {
	return r.description
}

// Link returns the recipe's external link
func (r *Recipe) Link() string {
	return r.link
}

// Image returns the stored image reference, if any
func (r *Recipe) Image() string {
	return r.image
}

// Tags returns the recipe's attached tags
func (r *Recipe) Tags() []Tag {
	return r.tags
}

// Ingredients returns the recipe's attached ingredients
func (r *Recipe) Ingredients() []Ingredient {
	return r.ingredients
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// UpdateTitle updates the recipe title with validation
func (r *Recipe) UpdateTitle(title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}

	r.title = title
	r.touch()
	return nil
}

// UpdateTimeMinutes updates the preparation time
func (r *Recipe) UpdateTimeMinutes(timeMinutes int) error {
	if timeMinutes < 0 {
		return ErrNegativeTime
	}

	r.timeMinutes = timeMinutes
	r.touch()
	return nil
}

// UpdatePrice updates the recipe price
func (r *Recipe) UpdatePrice(price Price) {
	r.price = price
	r.touch()
}

// UpdateDescription updates the free-text description
func (r *Recipe) UpdateDescription(description string) {
	r.description = description
	r.touch()
}

// UpdateLink updates the external link
func (r *Recipe) UpdateLink(link string) error {
	if len(link) > 255 {
		return ErrLinkTooLong
	}

	r.link = link
	r.touch()
	return nil
}

// SetImage stores the uploaded image reference
func (r *Recipe) SetImage(image string) {
	r.image = image
	r.touch()
}

// SetTags replaces the attached tag set. An empty slice clears the
// relation; the tag rows themselves are independent entities and survive.
func (r *Recipe) SetTags(tags []Tag) {
	r.tags = tags
	r.touch()
}

// SetIngredients replaces the attached ingredient set
func (r *Recipe) SetIngredients(ingredients []Ingredient) {
	r.ingredients = ingredients
	r.touch()
}

func (r *Recipe) touch() {
	r.updatedAt = time.Now()
}

// validateTitle validates recipe title
func validateTitle(title string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if len(title) > 255 {
		return ErrTitleTooLong
	}
	return nil
}
