package session

import (
	"context"
	"errors"
)

// ErrAbsent is returned by Load when no session is stored. Partial and corrupt state
// is also reported through the absent path after being wiped.
var ErrAbsent = errors.New("session absent")

// ErrCorrupt is returned when stored session data cannot be decoded. Stores wipe the
// offending data before returning it, so a subsequent Load reports ErrAbsent.
var ErrCorrupt = errors.New("session data corrupt")

// ErrStoreUnavailable is returned when a shared backend (Redis) cannot be reached.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Store persists at most one session across process restarts.
//
// Load returns [ErrAbsent] when nothing is stored and [ErrCorrupt] after wiping
// undecodable data. Clear is idempotent. Implementations must be safe for concurrent
// use.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}
