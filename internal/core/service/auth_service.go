package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/technotes/notes-api/internal/core/domain"
	"github.com/technotes/notes-api/internal/core/ports"
	"github.com/technotes/notes-api/internal/pkg/sanitize"
)

// ErrSigningDisabled is returned by Login when no JWT secret is configured.
var ErrSigningDisabled = errors.New("login: token signing is disabled")

// AuthService implements login for active users.
type AuthService struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 15 * time.Minute
	}
	return &AuthService{users: users, hasher: hasher, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login returns a signed access token carrying the username and roles.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if s.jwtSecret == "" {
		return "", ErrSigningDisabled
	}

	username = sanitize.Strip(username)
	if username == "" || password == "" {
		return "", domain.ErrMissingFields
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if !user.Active || !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	return s.generateToken(user)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}

	claims := jwt.MapClaims{
		"username": user.Username,
		"roles":    roles,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
