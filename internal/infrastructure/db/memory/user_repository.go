package memory

import (
	"context"

	"github.com/technotes/notes-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository on a Store.
type UserRepository struct {
	s *Store
}

func (r *UserRepository) FindAll(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.s.userOrder))
	for _, id := range r.s.userOrder {
		out = append(out, cloneUser(r.s.users[id]))
	}
	return out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if u := r.byUsername(username); u != nil {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.byUsername(user.Username) != nil {
		return domain.ErrDuplicateUsername
	}

	user.ID = newID()
	r.s.users[user.ID] = cloneUser(user)
	r.s.userOrder = append(r.s.userOrder, user.ID)
	return nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if holder := r.byUsername(user.Username); holder != nil && holder.ID != user.ID {
		return domain.ErrDuplicateUsername
	}

	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	r.s.userOrder = removeID(r.s.userOrder, id)
	return nil
}

// byUsername must be called with the lock held.
func (r *UserRepository) byUsername(username string) *domain.User {
	for _, u := range r.s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}
