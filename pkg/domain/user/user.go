package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no user matches an alias.
	ErrUserNotFound = fmt.Errorf("user %w", domain.ErrNotFound)
	// ErrMissingIdentity is returned when neither an auth-provider id nor an email is given.
	ErrMissingIdentity = fmt.Errorf("%w: clerk user id and email are required", domain.ErrValidation)
)

// User is a person known to the auth provider. Users are created on first
// sign-in and never modified afterwards.
type User struct {
	ID          uuid.UUID
	ClerkUserID string
	Email       string
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New creates a User with a fresh id and current timestamps.
func New(clerkUserID, email, name string) (*User, error) {
	clerkUserID = strings.TrimSpace(clerkUserID)
	email = strings.TrimSpace(email)
	if clerkUserID == "" || email == "" {
		return nil, ErrMissingIdentity
	}
	now := time.Now().UTC()
	return &User{
		ID:          uuid.New(),
		ClerkUserID: clerkUserID,
		Email:       email,
		Name:        name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MatchesAlias reports whether alias is this user's auth-provider id or email.
func (u *User) MatchesAlias(alias string) bool {
	if u == nil || alias == "" {
		return false
	}
	return u.ClerkUserID == alias || u.Email == alias
}
