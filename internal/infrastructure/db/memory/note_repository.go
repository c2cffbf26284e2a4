package memory

import (
	"context"

	"github.com/technotes/notes-api/internal/core/domain"
)

// NoteRepository implements ports.NoteRepository on a Store.
type NoteRepository struct {
	s *Store
}

func (r *NoteRepository) FindAll(_ context.Context) ([]*domain.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Note, 0, len(r.s.noteOrder))
	for _, id := range r.s.noteOrder {
		out = append(out, cloneNote(r.s.notes[id]))
	}
	return out, nil
}

func (r *NoteRepository) FindByID(_ context.Context, id string) (*domain.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n, ok := r.s.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	return cloneNote(n), nil
}

func (r *NoteRepository) FindByTitle(_ context.Context, title string) (*domain.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if n := r.byTitle(title); n != nil {
		return cloneNote(n), nil
	}
	return nil, domain.ErrNoteNotFound
}

func (r *NoteRepository) HasNotesForUser(_ context.Context, userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, n := range r.s.notes {
		if n.Owner == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *NoteRepository) Create(_ context.Context, note *domain.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.byTitle(note.Title) != nil {
		return domain.ErrDuplicateNoteTitle
	}

	note.ID = newID()
	r.s.notes[note.ID] = cloneNote(note)
	r.s.noteOrder = append(r.s.noteOrder, note.ID)
	return nil
}

func (r *NoteRepository) Update(_ context.Context, note *domain.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.notes[note.ID]; !ok {
		return domain.ErrNoteNotFound
	}
	if holder := r.byTitle(note.Title); holder != nil && holder.ID != note.ID {
		return domain.ErrDuplicateNoteTitle
	}

	r.s.notes[note.ID] = cloneNote(note)
	return nil
}

func (r *NoteRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.notes[id]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(r.s.notes, id)
	r.s.noteOrder = removeID(r.s.noteOrder, id)
	return nil
}

// byTitle must be called with the lock held.
func (r *NoteRepository) byTitle(title string) *domain.Note {
	for _, n := range r.s.notes {
		if n.Title == title {
			return n
		}
	}
	return nil
}
