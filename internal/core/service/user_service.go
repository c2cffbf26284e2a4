package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/technotes/notes-api/internal/core/domain"
	"github.com/technotes/notes-api/internal/core/ports"
	"github.com/technotes/notes-api/internal/pkg/metrics"
	"github.com/technotes/notes-api/internal/pkg/sanitize"
)

// UserService owns the user records: username uniqueness, role filtering and
// the rule that a user with notes cannot be deleted.
type UserService struct {
	users  ports.UserRepository
	notes  ports.NoteReferenceChecker
	hasher ports.PasswordHasher
	cache  ports.UsernameCache
	logger zerolog.Logger
}

// NewUserService wires a UserService. cache may be nil.
func NewUserService(
	users ports.UserRepository,
	notes ports.NoteReferenceChecker,
	hasher ports.PasswordHasher,
	cache ports.UsernameCache,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:  users,
		notes:  notes,
		hasher: hasher,
		cache:  cacheOrNop(cache),
		logger: logger,
	}
}

// List returns every user. An empty store yields an empty slice.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get looks a user up by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	id = sanitize.Strip(id)
	if id == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.users.FindByID(ctx, id)
}

// Create registers a new active user.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (msg string, err error) {
	defer func() { metrics.ObserveMutation("user", "create", err) }()

	username := sanitize.Strip(in.Username)
	roles := s.filterRoles(in.Roles)

	if username == "" || in.Password == "" || len(roles) == 0 {
		return "", domain.ErrMissingFields
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return "", domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("create user: check username: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("create user: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Roles:        roles,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return "", domain.ErrDuplicateUsername
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to create user")
		return "", domain.ErrInvalidUserData
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user created")
	return "New user created " + user.Username, nil
}

// Update replaces username, roles and active flag, and the password digest
// when a new password is supplied.
func (s *UserService) Update(ctx context.Context, in ports.UpdateUserInput) (msg string, err error) {
	defer func() { metrics.ObserveMutation("user", "update", err) }()

	id := sanitize.Strip(in.ID)
	username := sanitize.Strip(in.Username)
	roles := s.filterRoles(in.Roles)

	if id == "" || username == "" || len(roles) == 0 || in.Active == nil {
		return "", domain.ErrMissingFields
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("update user: %w", err)
	}

	holder, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil && holder.ID != user.ID:
		return "", domain.ErrDuplicateUsername
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return "", fmt.Errorf("update user: check username: %w", err)
	}

	user.Username = username
	user.Roles = roles
	user.Active = *in.Active
	user.UpdatedAt = time.Now().UTC()

	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return "", fmt.Errorf("update user: hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}
		return "", fmt.Errorf("update user: %w", err)
	}

	s.invalidate(ctx, user.ID)
	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user updated")
	return user.Username + " updated", nil
}

// Delete removes a user that owns no notes. Deletion is blocked, never
// cascaded.
func (s *UserService) Delete(ctx context.Context, id string) (msg string, err error) {
	defer func() { metrics.ObserveMutation("user", "delete", err) }()

	id = sanitize.Strip(id)
	if id == "" {
		return "", domain.ErrUserIDRequired
	}

	hasNotes, err := s.notes.HasNotesForUser(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete user: check notes: %w", err)
	}
	if hasNotes {
		return "", domain.ErrUserHasNotes
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("delete user: %w", err)
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("delete user: %w", err)
	}

	s.invalidate(ctx, user.ID)
	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user deleted")
	return fmt.Sprintf("Username %s with ID %s deleted", user.Username, user.ID), nil
}

func (s *UserService) filterRoles(raw []string) []domain.Role {
	roles := domain.FilterRoles(sanitize.StripAll(raw))
	if dropped := len(raw) - len(roles); dropped > 0 {
		s.logger.Debug().Strs("roles", raw).Int("dropped", dropped).Msg("unrecognised roles ignored")
	}
	return roles
}

func (s *UserService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate username cache")
	}
}
