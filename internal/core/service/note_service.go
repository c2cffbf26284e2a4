package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/technotes/notes-api/internal/core/domain"
	"github.com/technotes/notes-api/internal/core/ports"
	"github.com/technotes/notes-api/internal/pkg/metrics"
	"github.com/technotes/notes-api/internal/pkg/sanitize"
)

const defaultJoinConcurrency = 8

// NoteService owns the note records: title uniqueness, owner resolution at
// creation, and the owner-username join on listing.
type NoteService struct {
	notes  ports.NoteRepository
	users  ports.UserDirectory
	cache  ports.UsernameCache
	logger zerolog.Logger
}

// NewNoteService wires a NoteService. cache may be nil.
func NewNoteService(
	notes ports.NoteRepository,
	users ports.UserDirectory,
	cache ports.UsernameCache,
	logger zerolog.Logger,
) *NoteService {
	return &NoteService{
		notes:  notes,
		users:  users,
		cache:  cacheOrNop(cache),
		logger: logger,
	}
}

// List returns every note joined with its owner's username. Owners that
// cannot be resolved are shown as domain.UnknownUsername.
func (s *NoteService) List(ctx context.Context) ([]domain.NoteView, error) {
	notes, err := s.notes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if len(notes) == 0 {
		return nil, domain.ErrNoNotes
	}

	owners := make([]string, 0, len(notes))
	seen := make(map[string]struct{}, len(notes))
	for _, n := range notes {
		if _, ok := seen[n.Owner]; ok {
			continue
		}
		seen[n.Owner] = struct{}{}
		owners = append(owners, n.Owner)
	}

	names := s.resolveUsernames(ctx, owners)

	views := make([]domain.NoteView, len(notes))
	for i, n := range notes {
		name, ok := names[n.Owner]
		if !ok {
			name = domain.UnknownUsername
			metrics.OwnerFallbackTotal.Inc()
		}
		views[i] = domain.NoteView{Note: *n, Username: name}
	}
	return views, nil
}

// resolveUsernames looks every owner up once, a few at a time. Failed
// lookups are simply absent from the result.
func (s *NoteService) resolveUsernames(ctx context.Context, ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(defaultJoinConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if name := s.lookupUsername(ctx, id); name != "" {
				mu.Lock()
				names[id] = name
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return names
}

func (s *NoteService) lookupUsername(ctx context.Context, id string) string {
	name, hit, err := s.cache.Get(ctx, id)
	switch {
	case err != nil:
		metrics.UsernameCacheTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Str("user_id", id).Msg("username cache lookup failed")
	case hit:
		metrics.UsernameCacheTotal.WithLabelValues("hit").Inc()
		return name
	default:
		metrics.UsernameCacheTotal.WithLabelValues("miss").Inc()
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Err(err).Str("user_id", id).Msg("owner lookup failed")
		}
		return ""
	}

	if err := s.cache.Set(ctx, user.ID, user.Username); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to cache username")
	}
	return user.Username
}

// Create stores a new, not completed note for an existing user.
func (s *NoteService) Create(ctx context.Context, in ports.CreateNoteInput) (msg string, err error) {
	defer func() { metrics.ObserveMutation("note", "create", err) }()

	owner := sanitize.Strip(in.Owner)
	title := sanitize.Strip(in.Title)
	text := sanitize.Strip(in.Text)

	if owner == "" || title == "" || text == "" {
		return "", domain.ErrMissingFields
	}

	user, err := s.users.Get(ctx, owner)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("create note: resolve owner: %w", err)
	}

	if _, err := s.notes.FindByTitle(ctx, title); err == nil {
		return "", domain.ErrDuplicateNoteTitle
	} else if !errors.Is(err, domain.ErrNoteNotFound) {
		return "", fmt.Errorf("create note: check title: %w", err)
	}

	now := time.Now().UTC()
	note := &domain.Note{
		Owner:     user.ID,
		Title:     title,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		if errors.Is(err, domain.ErrDuplicateNoteTitle) {
			return "", domain.ErrDuplicateNoteTitle
		}
		s.logger.Error().Err(err).Str("title", title).Msg("failed to create note")
		return "", domain.ErrInvalidNoteData
	}

	s.logger.Info().Str("note_id", note.ID).Str("user_id", user.ID).Msg("note created")
	return "New note created", nil
}

// Update replaces every mutable field of a note. The owner is taken as given
// and is not checked against the user records again.
func (s *NoteService) Update(ctx context.Context, in ports.UpdateNoteInput) (msg string, err error) {
	defer func() { metrics.ObserveMutation("note", "update", err) }()

	id := sanitize.Strip(in.ID)
	owner := sanitize.Strip(in.Owner)
	title := sanitize.Strip(in.Title)
	text := sanitize.Strip(in.Text)

	if id == "" || owner == "" || title == "" || text == "" || in.Completed == nil {
		return "", domain.ErrMissingFields
	}

	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return "", domain.ErrNoteNotFound
		}
		return "", fmt.Errorf("update note: %w", err)
	}

	holder, err := s.notes.FindByTitle(ctx, title)
	switch {
	case err == nil && holder.ID != note.ID:
		return "", domain.ErrDuplicateNoteTitle
	case err != nil && !errors.Is(err, domain.ErrNoteNotFound):
		return "", fmt.Errorf("update note: check title: %w", err)
	}

	note.Owner = owner
	note.Title = title
	note.Text = text
	note.Completed = *in.Completed
	note.UpdatedAt = time.Now().UTC()

	if err := s.notes.Update(ctx, note); err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) {
			return "", err
		}
		return "", fmt.Errorf("update note: %w", err)
	}

	s.logger.Info().Str("note_id", note.ID).Msg("note updated")
	return fmt.Sprintf("'%s' updated", note.Title), nil
}

// Delete removes a note.
func (s *NoteService) Delete(ctx context.Context, id string) (msg string, err error) {
	defer func() { metrics.ObserveMutation("note", "delete", err) }()

	id = sanitize.Strip(id)
	if id == "" {
		return "", domain.ErrNoteIDRequired
	}

	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return "", domain.ErrNoteNotFound
		}
		return "", fmt.Errorf("delete note: %w", err)
	}

	if err := s.notes.Delete(ctx, note.ID); err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return "", domain.ErrNoteNotFound
		}
		return "", fmt.Errorf("delete note: %w", err)
	}

	s.logger.Info().Str("note_id", note.ID).Str("title", note.Title).Msg("note deleted")
	return fmt.Sprintf("Note '%s' with ID %s deleted", note.Title, note.ID), nil
}
