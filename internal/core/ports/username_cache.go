package ports

import "context"

// UsernameCache keeps user id → username pairs for the note listing join.
// A miss is reported as ("", false, nil).
type UsernameCache interface {
	Get(ctx context.Context, userID string) (string, bool, error)
	Set(ctx context.Context, userID, username string) error
	Invalidate(ctx context.Context, userID string) error
}
