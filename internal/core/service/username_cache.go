package service

import (
	"context"

	"github.com/technotes/notes-api/internal/core/ports"
)

// nopUsernameCache is used when no cache backend is configured.
type nopUsernameCache struct{}

func (nopUsernameCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (nopUsernameCache) Set(context.Context, string, string) error         { return nil }
func (nopUsernameCache) Invalidate(context.Context, string) error          { return nil }

func cacheOrNop(c ports.UsernameCache) ports.UsernameCache {
	if c == nil {
		return nopUsernameCache{}
	}
	return c
}
