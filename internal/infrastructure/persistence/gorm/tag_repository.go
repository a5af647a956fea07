package gorm

import (
	"context"
	"errors"

	"github.com/pantrybook/pantrybook/internal/domain/recipe"
	"github.com/pantrybook/pantrybook/internal/ports/outbound"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"gorm.io/gorm"
)

// TagRepository implements outbound.TagRepository using GORM
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new GORM tag repository
func NewTagRepository(db *gorm.DB) outbound.TagRepository {
	return &TagRepository{db: db}
}

// FindByUser returns the owner's tags ordered by descending name
func (r *TagRepository) FindByUser(ctx context.Context, userID uint) ([]*recipe.Tag, error) {
	var models []TagModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("list tags", err)
	}

	tags := make([]*recipe.Tag, 0, len(models))
	for i := range models {
		tags = append(tags, modelToTag(&models[i]))
	}
	return tags, nil
}

// FindByID retrieves an owned tag
func (r *TagRepository) FindByID(ctx context.Context, userID, id uint) (*recipe.Tag, error) {
	var model TagModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewTagNotFoundError()
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find tag", err)
	}
	return modelToTag(&model), nil
}

// Update persists changes to an owned tag
func (r *TagRepository) Update(ctx context.Context, tag *recipe.Tag) error {
	result := r.db.WithContext(ctx).Model(&TagModel{}).
		Where("id = ? AND user_id = ?", tag.ID(), tag.UserID()).
		Updates(map[string]interface{}{
			"name":       tag.Name(),
			"updated_at": tag.UpdatedAt(),
		})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return apperrors.NewValidationError("tag with this name already exists")
	}
	if result.Error != nil {
		return apperrors.NewDatabaseError("update tag", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewTagNotFoundError()
	}
	return nil
}

// Delete removes an owned tag and detaches it from every recipe
func (r *TagRepository) Delete(ctx context.Context, userID, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model TagModel
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&model).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", model.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewTagNotFoundError()
	}
	if err != nil {
		return apperrors.NewDatabaseError("delete tag", err)
	}
	return nil
}
