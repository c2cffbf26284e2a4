package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/technotes/notes-api/internal/core/domain"
	"github.com/technotes/notes-api/internal/core/ports"
	"github.com/technotes/notes-api/internal/infrastructure/db/memory"
)

var errStoreDown = errors.New("store unavailable")

// stubHasher prefixes secrets instead of hashing them, which keeps tests fast.
type stubHasher struct{}

func (stubHasher) Hash(secret string) (string, error) { return "h:" + secret, nil }

func (stubHasher) Verify(secret, digest string) bool {
	return strings.TrimPrefix(digest, "h:") == secret && strings.HasPrefix(digest, "h:")
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("hash failed") }
func (failingHasher) Verify(string, string) bool  { return false }

// stubCache is a map-backed username cache that records invalidations.
// Like the Redis cache, it ignores Set for ids invalidated earlier.
type stubCache struct {
	mu          sync.Mutex
	names       map[string]string
	stale       map[string]struct{}
	invalidated []string
	getErr      error
}

func newStubCache() *stubCache {
	return &stubCache{names: make(map[string]string), stale: make(map[string]struct{})}
}

func (c *stubCache) Get(_ context.Context, id string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	name, ok := c.names[id]
	return name, ok, nil
}

func (c *stubCache) Set(_ context.Context, id, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.stale[id]; ok {
		return nil
	}
	c.names[id] = name
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.names, id)
	c.stale[id] = struct{}{}
	c.invalidated = append(c.invalidated, id)
	return nil
}

// countingDirectory counts owner lookups on top of a real directory.
type countingDirectory struct {
	next  ports.UserDirectory
	calls atomic.Int32
	err   error
}

func (d *countingDirectory) Get(ctx context.Context, id string) (*domain.User, error) {
	d.calls.Add(1)
	if d.err != nil {
		return nil, d.err
	}
	return d.next.Get(ctx, id)
}

// pausingDirectory holds the first lookup after it has read the user until
// release is closed.
type pausingDirectory struct {
	next    ports.UserDirectory
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func newPausingDirectory(next ports.UserDirectory) *pausingDirectory {
	return &pausingDirectory{next: next, read: make(chan struct{}), release: make(chan struct{})}
}

func (d *pausingDirectory) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := d.next.Get(ctx, id)
	d.once.Do(func() {
		close(d.read)
		<-d.release
	})
	return u, err
}

// userRepoWithFaults lets a test override single operations of the memory
// repository.
type userRepoWithFaults struct {
	*memory.UserRepository
	createErr      error
	findByNameMiss bool
}

func (r *userRepoWithFaults) Create(ctx context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.UserRepository.Create(ctx, u)
}

func (r *userRepoWithFaults) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r.findByNameMiss {
		return nil, domain.ErrUserNotFound
	}
	return r.UserRepository.FindByUsername(ctx, username)
}

type noteRepoWithFaults struct {
	*memory.NoteRepository
	createErr   error
	findAllErr  error
	hasNotesErr error
}

func (r *noteRepoWithFaults) Create(ctx context.Context, n *domain.Note) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.NoteRepository.Create(ctx, n)
}

func (r *noteRepoWithFaults) FindAll(ctx context.Context) ([]*domain.Note, error) {
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}
	return r.NoteRepository.FindAll(ctx)
}

func (r *noteRepoWithFaults) HasNotesForUser(ctx context.Context, id string) (bool, error) {
	if r.hasNotesErr != nil {
		return false, r.hasNotesErr
	}
	return r.NoteRepository.HasNotesForUser(ctx, id)
}

// fixture wires both services over one memory store.
type fixture struct {
	store *memory.Store
	cache *stubCache
	users *UserService
	notes *NoteService
}

func newFixture() *fixture {
	store := memory.NewStore()
	cache := newStubCache()
	users := NewUserService(store.Users(), store.Notes(), stubHasher{}, cache, zerolog.Nop())
	notes := NewNoteService(store.Notes(), users, cache, zerolog.Nop())
	return &fixture{store: store, cache: cache, users: users, notes: notes}
}

// mustCreateUser creates a user through the service and returns its id.
func (f *fixture) mustCreateUser(t testing.TB, username string, roles ...string) string {
	t.Helper()
	if len(roles) == 0 {
		roles = []string{"Employee"}
	}
	if _, err := f.users.Create(context.Background(), ports.CreateUserInput{
		Username: username, Password: "pw123", Roles: roles,
	}); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	u, err := f.store.Users().FindByUsername(context.Background(), username)
	if err != nil {
		t.Fatalf("find user %s: %v", username, err)
	}
	return u.ID
}

func (f *fixture) mustCreateNote(t testing.TB, owner, title string) string {
	t.Helper()
	if _, err := f.notes.Create(context.Background(), ports.CreateNoteInput{
		Owner: owner, Title: title, Text: "text of " + title,
	}); err != nil {
		t.Fatalf("create note %s: %v", title, err)
	}
	n, err := f.store.Notes().FindByTitle(context.Background(), title)
	if err != nil {
		t.Fatalf("find note %s: %v", title, err)
	}
	return n.ID
}

func boolPtr(b bool) *bool { return &b }
