package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

// AdminService implements the moderation surface. Route-level RBAC restricts
// it to the admin role.
type AdminService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAdminService(users ports.UserRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// DeleteUser removes the profile document only. The identity credential is
// not revoked; the orphaned credential's next login fails with
// ErrUserNotFound and clients fall back to registration.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user profile deleted")
	return nil
}
