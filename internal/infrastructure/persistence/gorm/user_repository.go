package gorm

import (
	"context"
	"errors"

	"github.com/pantrybook/pantrybook/internal/domain/user"
	"github.com/pantrybook/pantrybook/internal/ports/outbound"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"gorm.io/gorm"
)

// UserRepository implements outbound.UserRepository using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new GORM user repository
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user and writes the assigned id back onto the entity
func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model := userToModel(entity)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewEmailAlreadyExistsError(entity.Email())
		}
		return apperrors.NewDatabaseError("create user", err)
	}
	entity.SetID(model.ID)
	return nil
}

// Update persists changes to an existing user
func (r *UserRepository) Update(ctx context.Context, entity *user.User) error {
	model := userToModel(entity)
	result := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"password_hash": model.PasswordHash,
			"is_active":     model.IsActive,
			"is_staff":      model.IsStaff,
			"is_superuser":  model.IsSuperuser,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.NewDatabaseError("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewUserNotFoundError()
	}
	return nil
}

// FindByID retrieves a user by id
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUserNotFoundError()
		}
		return nil, apperrors.NewDatabaseError("find user by id", err)
	}
	return modelToUser(&model), nil
}

// FindByEmail retrieves a user by exact email match. Lookups are
// case-sensitive; emails are normalized before they are stored.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUserNotFoundError()
		}
		return nil, apperrors.NewDatabaseError("find user by email", err)
	}
	return modelToUser(&model), nil
}
