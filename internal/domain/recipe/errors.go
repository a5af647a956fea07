package recipe

import "errors"

// Domain errors for recipe, tag and ingredient operations

var (
	// Entity validation errors
	ErrTitleRequired = errors.New("recipe title is required")
	ErrTitleTooLong  = errors.New("recipe title must not exceed 255 characters")
	ErrLinkTooLong   = errors.New("recipe link must not exceed 255 characters")
	ErrNegativeTime  = errors.New("time in minutes must not be negative")
	ErrNameRequired  = errors.New("name is required")
	ErrNameTooLong   = errors.New("name must not exceed 255 characters")

	// Price validation errors
	ErrPriceRequired = errors.New("price is required")
	ErrPriceInvalid  = errors.New("price must be a decimal with at most two decimal places")
	ErrPriceTooLarge = errors.New("price must not exceed 999.99")
)
