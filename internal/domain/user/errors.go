package user

import "errors"

// Domain errors for user operations

var (
	ErrEmailRequired    = errors.New("email address is required")
	ErrEmailInvalid     = errors.New("invalid email address")
	ErrEmailTooLong     = errors.New("email address must not exceed 255 characters")
	ErrNameTooLong      = errors.New("name must not exceed 255 characters")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must not exceed 128 characters")
	ErrPasswordHashing  = errors.New("failed to hash password")
)
