// Package memory is an in-process store for users and notes. It enforces the
// same unique keys as the Mongo indexes and is meant for tests and local runs
// with STORE=memory.
package memory

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/technotes/notes-api/internal/core/domain"
)

// Store holds both collections behind one lock so the cross-collection reads
// made by the repositories are consistent.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	userOrder []string
	notes     map[string]*domain.Note
	noteOrder []string
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*domain.User),
		notes: make(map[string]*domain.Note),
	}
}

// Users returns a repository view over the user collection.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Notes returns a repository view over the note collection.
func (s *Store) Notes() *NoteRepository { return &NoteRepository{s: s} }

// newID returns a fresh ObjectID hex so ids look the same in both stores.
func newID() string {
	return primitive.NewObjectID().Hex()
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Roles = append([]domain.Role(nil), u.Roles...)
	return &c
}

func cloneNote(n *domain.Note) *domain.Note {
	c := *n
	return &c
}
