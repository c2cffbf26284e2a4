package ports

import (
	"context"

	"github.com/technotes/notes-api/internal/core/domain"
)

// CreateUserInput is the DTO passed from the transport layer to UserService.Create.
type CreateUserInput struct {
	Username string
	Password string
	Roles    []string
}

// UpdateUserInput carries a full user replacement. Active is a pointer so a
// missing flag can be told apart from false. An empty Password keeps the
// current digest.
type UpdateUserInput struct {
	ID       string
	Username string
	Roles    []string
	Active   *bool
	Password string
}

// UserDirectory resolves users by id. The note service depends on this
// rather than on the whole user service.
type UserDirectory interface {
	Get(ctx context.Context, id string) (*domain.User, error)
}

// UserService defines use-case operations for users. Mutations return a
// human-readable confirmation.
type UserService interface {
	UserDirectory

	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (string, error)
	Update(ctx context.Context, in UpdateUserInput) (string, error)
	Delete(ctx context.Context, id string) (string, error)
}
