// Package user defines the user domain entity
package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents an account in the system.
// Accounts own recipes, tags and ingredients; ownership is established at
// creation time and never transferred.
type User struct {
	id           uint
	email        string
	name         string
	passwordHash string
	isActive     bool
	isStaff      bool
	isSuperuser  bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new user with a normalized email and hashed password
func NewUser(email, name, password string) (*User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrPasswordHashing
	}

	now := time.Now()
	return &User{
		email:        normalized,
		name:         name,
		passwordHash: string(hashedPassword),
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// NewSuperuser creates a new user with staff and superuser flags set
func NewSuperuser(email, password string) (*User, error) {
	u, err := NewUser(email, "", password)
	if err != nil {
		return nil, err
	}

	u.isStaff = true
	u.isSuperuser = true
	return u, nil
}

// Reconstitute rebuilds a user entity from persisted state.
// It performs no validation; the stored row is the source of truth.
func Reconstitute(
	id uint,
	email, name, passwordHash string,
	isActive, isStaff, isSuperuser bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		isActive:     isActive,
		isStaff:      isStaff,
		isSuperuser:  isSuperuser,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the user's ID
func (u *User) ID() uint {
	return u.id
}

// SetID assigns the storage-generated identifier after the first insert
func (u *User) SetID(id uint) {
	u.id = id
}

// Email returns the user's normalized email
func (u *User) Email() string {
	return u.email
}

// Name returns the user's display name
func (u *User) Name() string {
	return u.name
}

// PasswordHash returns the stored bcrypt hash
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// IsActive returns whether the user is active
func (u *User) IsActive() bool {
	return u.isActive
}

// IsStaff returns whether the user has staff privileges
func (u *User) IsStaff() bool {
	return u.isStaff
}

// IsSuperuser returns whether the user has superuser privileges
func (u *User) IsSuperuser() bool {
	return u.isSuperuser
}

// CreatedAt returns when the user was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// CheckPassword verifies if the provided password matches
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password))
}

// UpdateName updates the user's display name
func (u *User) UpdateName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	u.name = name
	u.updatedAt = time.Now()
	return nil
}

// UpdatePassword rehashes and stores a new password
func (u *User) UpdatePassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrPasswordHashing
	}

	u.passwordHash = string(hashedPassword)
	u.updatedAt = time.Now()
	return nil
}

// Deactivate deactivates the user
func (u *User) Deactivate() {
	u.isActive = false
	u.updatedAt = time.Now()
}

// NormalizeEmail validates an email address and lowercases its domain
// portion. The local part keeps its casing: Test2@EXAMPLE.com becomes
// Test2@example.com.
func NormalizeEmail(email string) (string, error) {
	if email == "" {
		return "", ErrEmailRequired
	}

	if len(email) > 255 {
		return "", ErrEmailTooLong
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", ErrEmailInvalid
	}

	return email[:at+1] + strings.ToLower(email[at+1:]), nil
}

func validateName(name string) error {
	if len(name) > 255 {
		return ErrNameTooLong
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	if len(password) > 128 {
		return ErrPasswordTooLong
	}

	return nil
}
