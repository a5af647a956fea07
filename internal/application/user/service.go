// Package user provides the application layer for account management
package user

import (
	"context"
	"time"

	"github.com/pantrybook/pantrybook/internal/domain/user"
	"github.com/pantrybook/pantrybook/internal/infrastructure/security"
	"github.com/pantrybook/pantrybook/internal/ports/outbound"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"go.uber.org/zap"
)

// UserService implements account management use cases
type UserService struct {
	userRepo    outbound.UserRepository
	authService *security.AuthService
	logger      *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo outbound.UserRepository,
	authService *security.AuthService,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		authService: authService,
		logger:      logger.Named("user-service"),
	}
}

// RegisterCommand contains account registration data
type RegisterCommand struct {
	Email    string
	Name     string
	Password string
}

// TokenCommand contains credentials for token issuance
type TokenCommand struct {
	Email    string
	Password string
}

// UpdateMeCommand contains a partial update of the authenticated user.
// Email is deliberately absent: it is immutable once the account exists.
type UpdateMeCommand struct {
	UserID   uint
	Name     *string
	Password *string
}

// UserDTO represents account data in responses
type UserDTO struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenDTO carries an issued bearer token
type TokenDTO struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Register creates a new account
func (s *UserService) Register(ctx context.Context, cmd RegisterCommand) (*UserDTO, error) {
	newUser, err := user.NewUser(cmd.Email, cmd.Name, cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.FindByEmail(ctx, newUser.Email()); err == nil && existing != nil {
		return nil, apperrors.NewValidationError("user with this email address already exists")
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, apperrors.Wrap(err, "failed to save user")
	}

	s.logger.Info("User registered",
		zap.Uint("user_id", newUser.ID()),
		zap.String("email", newUser.Email()),
	)

	dto := entityToDTO(newUser)
	return &dto, nil
}

// CreateSuperuser creates an account with staff and superuser flags set.
// Used by seeding and operational tooling, not exposed over HTTP.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*UserDTO, error) {
	su, err := user.NewSuperuser(email, password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, su); err != nil {
		return nil, apperrors.Wrap(err, "failed to save superuser")
	}

	s.logger.Info("Superuser created", zap.String("email", su.Email()))

	dto := entityToDTO(su)
	return &dto, nil
}

// IssueToken authenticates credentials and returns a bearer token.
// The error never says whether the email or the password was wrong.
func (s *UserService) IssueToken(ctx context.Context, cmd TokenCommand) (*TokenDTO, error) {
	normalized, err := user.NormalizeEmail(cmd.Email)
	if err != nil {
		return nil, apperrors.NewInvalidCredentialsError()
	}

	userEntity, err := s.userRepo.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, apperrors.NewInvalidCredentialsError()
	}

	if err := userEntity.CheckPassword(cmd.Password); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("email", normalized))
		return nil, apperrors.NewInvalidCredentialsError()
	}

	if !userEntity.IsActive() {
		return nil, apperrors.NewInvalidCredentialsError()
	}

	token, err := s.authService.GenerateToken(ctx, userEntity.ID(), userEntity.Email())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate token")
	}

	s.logger.Info("Token issued", zap.Uint("user_id", userEntity.ID()))

	return &TokenDTO{
		Token:     token,
		ExpiresIn: int64(s.authService.TokenLifetime() / time.Second),
	}, nil
}

// GetByID retrieves an account by id
func (s *UserService) GetByID(ctx context.Context, userID uint) (*UserDTO, error) {
	userEntity, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load user")
	}

	dto := entityToDTO(userEntity)
	return &dto, nil
}

// UpdateMe applies a partial update to the authenticated user.
// Omitted fields stay untouched; the password is rehashed when changed.
func (s *UserService) UpdateMe(ctx context.Context, cmd UpdateMeCommand) (*UserDTO, error) {
	userEntity, err := s.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load user")
	}

	if cmd.Name != nil {
		if err := userEntity.UpdateName(*cmd.Name); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if cmd.Password != nil {
		if err := userEntity.UpdatePassword(*cmd.Password); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if err := s.userRepo.Update(ctx, userEntity); err != nil {
		return nil, apperrors.Wrap(err, "failed to update user")
	}

	s.logger.Info("User updated", zap.Uint("user_id", userEntity.ID()))

	dto := entityToDTO(userEntity)
	return &dto, nil
}

// entityToDTO converts a user entity to a DTO
func entityToDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:    u.ID(),
		Email: u.Email(),
		Name:  u.Name(),
	}
}
