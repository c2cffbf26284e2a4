package ports

import (
	"context"

	"github.com/technotes/notes-api/internal/core/domain"
)

// CreateNoteInput is the DTO passed from the transport layer to NoteService.Create.
type CreateNoteInput struct {
	Owner string
	Title string
	Text  string
}

// UpdateNoteInput carries a full note replacement. Completed is a pointer so
// a missing flag can be told apart from false.
type UpdateNoteInput struct {
	ID        string
	Owner     string
	Title     string
	Text      string
	Completed *bool
}

// NoteService defines use-case operations for notes. Mutations return a
// human-readable confirmation.
type NoteService interface {
	List(ctx context.Context) ([]domain.NoteView, error)
	Create(ctx context.Context, in CreateNoteInput) (string, error)
	Update(ctx context.Context, in UpdateNoteInput) (string, error)
	Delete(ctx context.Context, id string) (string, error)
}
