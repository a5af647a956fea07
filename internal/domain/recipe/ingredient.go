package recipe

import "time"

// Ingredient is an owner-scoped ingredient attached to recipes.
// Identity semantics mirror Tag: (owner, name) is the natural key used
// for create-or-reuse on recipe writes.
type Ingredient struct {
	id        uint
	userID    uint
	name      string
	createdAt time.Time
	updatedAt time.Time
}

// NewIngredient creates a new ingredient with validation
func NewIngredient(userID uint, name string) (*Ingredient, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Ingredient{
		userID:    userID,
		name:      name,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstituteIngredient rebuilds an ingredient entity from persisted state
func ReconstituteIngredient(id, userID uint, name string, createdAt, updatedAt time.Time) *Ingredient {
	return &Ingredient{
		id:        id,
		userID:    userID,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the ingredient's unique identifier
func (i *Ingredient) ID() uint {
	return i.id
}

// SetID assigns the storage-generated identifier after the first insert
func (i *Ingredient) SetID(id uint) {
	i.id = id
}

// UserID returns the owner's user ID
func (i *Ingredient) UserID() uint {
	return i.userID
}

// Name returns the ingredient name
func (i *Ingredient) Name() string {
	return i.name
}

// CreatedAt returns when the ingredient was created
func (i *Ingredient) CreatedAt() time.Time {
	return i.createdAt
}

// UpdatedAt returns when the ingredient was last updated
func (i *Ingredient) UpdatedAt() time.Time {
	return i.updatedAt
}

// Rename changes the ingredient name with validation
func (i *Ingredient) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	i.name = name
	i.updatedAt = time.Now()
	return nil
}
