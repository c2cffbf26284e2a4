package ports

import (
	"context"

	"github.com/technotes/notes-api/internal/core/domain"
)

// NoteReferenceChecker answers whether any note still points at a user.
type NoteReferenceChecker interface {
	HasNotesForUser(ctx context.Context, userID string) (bool, error)
}

// NoteRepository defines persistence operations for notes.
// Lookups return domain.ErrNoteNotFound when nothing matches.
type NoteRepository interface {
	NoteReferenceChecker

	// FindAll returns every note in the store's natural order.
	FindAll(ctx context.Context) ([]*domain.Note, error)
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	FindByTitle(ctx context.Context, title string) (*domain.Note, error)
	// Create stores a new note and sets its ID. A title collision reported by
	// the store surfaces as domain.ErrDuplicateNoteTitle.
	Create(ctx context.Context, note *domain.Note) error
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id string) error
}
