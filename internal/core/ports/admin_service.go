package ports

import (
	"context"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
)

// AdminService exposes the moderation surface, admin role only.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// DeleteUser removes the profile document only. The credential is not
	// revoked; subsequent logins for it fail with ErrUserNotFound.
	DeleteUser(ctx context.Context, id string) error
}
