package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

const resetTokenTTL = 15 * time.Minute

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var phonePattern = regexp.MustCompile(`^\+91\d{10}$`)

// AuthService implements registration, login, logout, and password reset.
type AuthService struct {
	users       ports.UserRepository
	sessions    ports.SessionStore
	resetTokens ports.ResetTokenStore
	jwtSecret   string
	tokenTTL    time.Duration
	logger      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionStore,
	resetTokens ports.ResetTokenStore,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:       users,
		sessions:    sessions,
		resetTokens: resetTokens,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	switch {
	case username == "":
		return nil, domain.Invalid("username", "username is required")
	case email == "":
		return nil, domain.Invalid("email", "email is required")
	case !emailPattern.MatchString(email):
		return nil, domain.Invalid("email", "please enter a valid email address")
	case !phonePattern.MatchString(in.PhoneNumber):
		return nil, domain.Invalid("phone_number", "please enter a valid phone number (+91 followed by 10 digits)")
	case len(in.Password) < 6:
		return nil, domain.Invalid("password", "password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *ports.Profile, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	// A credential whose profile document was removed by an admin surfaces
	// here as not-found; clients treat that the same as no account.
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	profile := profileOf(user)
	if err := s.sessions.Put(ctx, user.ID, profile); err != nil {
		// The cache is a convenience copy; login still succeeds without it.
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("session hydration failed")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, profile, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.sessions.Delete(ctx, userID)
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Uniform response; do not reveal whether the account exists.
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.resetTokens.Store(ctx, token, user.ID, resetTokenTTL); err != nil {
		return err
	}

	// Mail delivery is handled out of process; the token is logged for the
	// delivery pipeline to pick up.
	s.logger.Info().Str("user_id", user.ID).Str("reset_token", token).Msg("password reset issued")
	return nil
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return domain.Invalid("password", "password must be at least 6 characters")
	}

	userID, err := s.resetTokens.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Invalid("token", "invalid or expired reset token")
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	// Any cached session predates the new credential; drop it.
	if err := s.sessions.Delete(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("session invalidation failed")
	}

	s.logger.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*ports.Profile, error) {
	profile, err := s.sessions.Get(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile = profileOf(user)
	if err := s.sessions.Put(ctx, userID, profile); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("session rehydration failed")
	}
	return profile, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func profileOf(u *domain.User) *ports.Profile {
	return &ports.Profile{
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}
