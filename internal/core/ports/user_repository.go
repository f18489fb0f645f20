package ports

import (
	"context"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
)

// UserRepository persists user profile documents. The same document carries
// the credential hash, so this doubles as the identity store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns all users ordered by creation time, newest first.
	List(ctx context.Context) ([]*domain.User, error)
	// UpdatePassword replaces the stored credential hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// Delete removes the profile document. It does not revoke the credential;
	// a deleted user's login subsequently fails with ErrUserNotFound.
	Delete(ctx context.Context, id string) error
}
