package ports

import (
	"context"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username    string
	Email       string
	PhoneNumber string
	Password    string
}

// AuthService implements registration, login, logout, and password reset.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies credentials, hydrates the session cache, and returns a
	// signed token plus the cached profile. A credential whose profile
	// document is missing fails with ErrUserNotFound.
	Login(ctx context.Context, email, password string) (string, *Profile, error)
	Logout(ctx context.Context, userID string) error
	// RequestPasswordReset issues a reset token for a known email. Unknown
	// emails return nil so the response does not leak account existence.
	RequestPasswordReset(ctx context.Context, email string) error
	// ConfirmPasswordReset consumes a single-use reset token, stores the new
	// password hash, and invalidates the user's cached session. An unknown or
	// expired token fails with a field-scoped ValidationError.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	// Profile returns the session-cached profile, falling back to the user
	// document (and re-hydrating) on a cache miss.
	Profile(ctx context.Context, userID string) (*Profile, error)
}
