package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultUsernameTTL = 5 * time.Minute

	// staleWindow bounds how long a lookup started before an invalidation
	// may still be in flight.
	staleWindow = 30 * time.Second
)

// UsernameCache stores user id → username pairs used by the note listing.
// Key format: username:<user_id>
//
// Invalidate leaves a username:stale:<user_id> marker for staleWindow. Set
// is a no-op while the marker exists, so a lookup that read the user before
// a rename cannot put the old name back.
type UsernameCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUsernameCache creates a UsernameCache wrapping the given Redis client.
// A non-positive ttl falls back to defaultUsernameTTL.
func NewUsernameCache(client *redis.Client, ttl time.Duration) *UsernameCache {
	if ttl <= 0 {
		ttl = defaultUsernameTTL
	}
	return &UsernameCache{client: client, ttl: ttl}
}

// Get returns the cached username, reporting a miss with ok=false.
func (c *UsernameCache) Get(ctx context.Context, userID string) (string, bool, error) {
	name, err := c.client.Get(ctx, c.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("username cache get: %w", err)
	}
	return name, true, nil
}

// Set caches a username until the ttl expires, unless the user was
// invalidated within staleWindow.
func (c *UsernameCache) Set(ctx context.Context, userID, username string) error {
	stale := c.staleKey(userID)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, stale).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(userID), username, c.ttl)
			return nil
		})
		return err
	}, stale)
	if errors.Is(err, redis.TxFailedErr) {
		// Invalidated between the check and the write.
		return nil
	}
	if err != nil {
		return fmt.Errorf("username cache set: %w", err)
	}
	return nil
}

// Invalidate drops the entry after a rename or deletion and blocks refills
// for staleWindow.
func (c *UsernameCache) Invalidate(ctx context.Context, userID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.staleKey(userID), 1, staleWindow)
		pipe.Del(ctx, c.key(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("username cache invalidate: %w", err)
	}
	return nil
}

func (c *UsernameCache) key(userID string) string {
	return "username:" + userID
}

func (c *UsernameCache) staleKey(userID string) string {
	return "username:stale:" + userID
}
