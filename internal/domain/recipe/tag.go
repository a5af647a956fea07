package recipe

import "time"

// Tag is an owner-scoped label attached to recipes. The natural identity
// of a tag is the (owner, name) pair: recipe writes reuse an existing tag
// with the same name for the same user instead of creating a duplicate.
type Tag struct {
	id        uint
	userID    uint
	name      string
	createdAt time.Time
	updatedAt time.Time
}

// NewTag creates a new tag with validation
func NewTag(userID uint, name string) (*Tag, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Tag{
		userID:    userID,
		name:      name,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstituteTag rebuilds a tag entity from persisted state
func ReconstituteTag(id, userID uint, name string, createdAt, updatedAt time.Time) *Tag {
	return &Tag{
		id:        id,
		userID:    userID,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the tag's unique identifier
func (t *Tag) ID() uint {
	return t.id
}

// SetID assigns the storage-generated identifier after the first insert
func (t *Tag) SetID(id uint) {
	t.id = id
}

// UserID returns the owner's user ID
func (t *Tag) UserID() uint {
	return t.userID
}

// Name returns the tag name
func (t *Tag) Name() string {
	return t.name
}

// CreatedAt returns when the tag was created
func (t *Tag) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt returns when the tag was last updated
func (t *Tag) UpdatedAt() time.Time {
	return t.updatedAt
}

// Rename changes the tag name with validation
func (t *Tag) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	t.name = name
	t.updatedAt = time.Now()
	return nil
}

// validateName validates tag and ingredient names
func validateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > 255 {
		return ErrNameTooLong
	}
	return nil
}
