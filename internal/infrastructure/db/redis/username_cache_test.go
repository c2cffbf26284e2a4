package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/technotes/notes-api/internal/core/ports"
)

var _ ports.UsernameCache = (*UsernameCache)(nil)

func TestUsernameCache_Key(t *testing.T) {
	c := NewUsernameCache(nil, 0)
	if got := c.key("abc"); got != "username:abc" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := c.staleKey("abc"); got != "username:stale:abc" {
		t.Fatalf("unexpected stale key %q", got)
	}
	if c.ttl != defaultUsernameTTL {
		t.Fatalf("expected default ttl, got %v", c.ttl)
	}
}

// TestUsernameCache_Integration runs against REDIS_TEST_ADDR when set.
func TestUsernameCache_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	c := NewUsernameCache(client, time.Minute)
	id := "it-" + time.Now().Format("150405.000000")

	if _, ok, err := c.Get(ctx, id); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, id, "alice"); err != nil {
		t.Fatalf("set: %v", err)
	}
	name, ok, err := c.Get(ctx, id)
	if err != nil || !ok || name != "alice" {
		t.Fatalf("expected hit alice, got %q ok=%v err=%v", name, ok, err)
	}
	if err := c.Invalidate(ctx, id); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := client.Get(ctx, c.key(id)).Result(); err != redis.Nil {
		t.Fatalf("expected key removed, got %v", err)
	}

	// A late write of the pre-rename name must not land.
	if err := c.Set(ctx, id, "alice"); err != nil {
		t.Fatalf("set after invalidate: %v", err)
	}
	if _, ok, err := c.Get(ctx, id); err != nil || ok {
		t.Fatalf("expected miss after invalidate, got ok=%v err=%v", ok, err)
	}
	if ttl, err := client.TTL(ctx, c.staleKey(id)).Result(); err != nil || ttl <= 0 || ttl > staleWindow {
		t.Fatalf("unexpected stale marker ttl %v (%v)", ttl, err)
	}
	t.Cleanup(func() { client.Del(context.Background(), c.staleKey(id)) })
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatal("expected connection error")
	}
}
