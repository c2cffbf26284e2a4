package ports

import (
	"context"

	"github.com/technotes/notes-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
// Lookups return domain.ErrUserNotFound when nothing matches.
type UserRepository interface {
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create stores a new user and sets its ID. A username collision reported
	// by the store surfaces as domain.ErrDuplicateUsername.
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
