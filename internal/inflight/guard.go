// Package inflight guards against duplicate overlapping mutations: the engine's
// uniform replacement for the front end's "disable the save button while a request is
// outstanding" pattern.
package inflight

import (
	"errors"
	"sync"
)

// ErrInFlight is returned when a mutation with the same key is already outstanding.
var ErrInFlight = errors.New("operation already in flight")

// Guard tracks live operation keys. It is in-process state: the guard protects one
// client against its own double submissions, not the backend against the fleet.
type Guard struct {
	mu   sync.Mutex
	live map[string]struct{}
}

func New() *Guard {
	return &Guard{live: make(map[string]struct{})}
}

// Acquire registers key as in flight. The returned release function is idempotent and
// must be called when the operation completes, successfully or not.
func (g *Guard) Acquire(key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.live[key]; ok {
		return nil, ErrInFlight
	}
	g.live[key] = struct{}{}

	var once sync.Once
	release := func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.live, key)
			g.mu.Unlock()
		})
	}
	return release, nil
}

// Live reports the number of outstanding keys. Test hook.
func (g *Guard) Live() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.live)
}
