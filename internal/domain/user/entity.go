// Package user contains the user domain model.
package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role controls access to the admin surface.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrNameRequired    = errors.New("name is required")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserInactive    = errors.New("user account is deactivated")
)

// User is the account aggregate. System accounts own the seeded recipes
// that are not attributed to any real author in browse results.
type User struct {
	id           uuid.UUID
	email        string
	name         string
	passwordHash string
	role         Role
	isActive     bool
	isSystem     bool
	createdAt    time.Time
	lastLoginAt  *time.Time
}

// New creates a user account, hashing the password with bcrypt.
func New(email, name, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooWeak
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		id:           uuid.New(),
		email:        email,
		name:         name,
		passwordHash: string(hash),
		role:         RoleUser,
		isActive:     true,
		createdAt:    time.Now(),
	}, nil
}

func (u *User) ID() uuid.UUID           { return u.id }
func (u *User) Email() string           { return u.email }
func (u *User) Name() string            { return u.name }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) Role() Role              { return u.role }
func (u *User) IsActive() bool          { return u.isActive }
func (u *User) IsSystem() bool          { return u.isSystem }
func (u *User) IsAdmin() bool           { return u.role == RoleAdmin }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) LastLoginAt() *time.Time { return u.lastLoginAt }

// CheckPassword verifies a candidate password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

// RecordLogin stamps a successful authentication.
func (u *User) RecordLogin() {
	now := time.Now()
	u.lastLoginAt = &now
}

// Deactivate disables the account; an inactive user cannot authenticate.
func (u *User) Deactivate() { u.isActive = false }

// Activate re-enables the account.
func (u *User) Activate() { u.isActive = true }

// Rehydrate reconstructs a User from persisted state, for repository
// mappers only.
func Rehydrate(
	id uuid.UUID,
	email, name, passwordHash string,
	role Role,
	isActive, isSystem bool,
	createdAt time.Time,
	lastLoginAt *time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		isActive:     isActive,
		isSystem:     isSystem,
		createdAt:    createdAt,
		lastLoginAt:  lastLoginAt,
	}
}
