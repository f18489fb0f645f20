package ports

import (
	"context"
	"time"
)

// Profile is the read-only copy of a user's document cached for the duration
// of a session. It mirrors the fields the browser used to keep in session
// storage.
type Profile struct {
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SessionStore caches one profile per signed-in user. Writes are
// last-writer-wins; concurrent hydration from multiple clients is not
// coordinated.
type SessionStore interface {
	// Put stores the profile under the user id for the session lifetime.
	Put(ctx context.Context, userID string, p *Profile) error
	// Get returns the cached profile or ErrSessionNotFound.
	Get(ctx context.Context, userID string) (*Profile, error)
	// Delete clears the entry unconditionally.
	Delete(ctx context.Context, userID string) error
}

// ResetTokenStore holds single-use password-reset tokens with a short TTL.
type ResetTokenStore interface {
	Store(ctx context.Context, token, userID string, ttl time.Duration) error
	// Consume returns the user id for the token and invalidates it, or
	// ErrSessionNotFound for unknown/expired tokens.
	Consume(ctx context.Context, token string) (string, error)
}
