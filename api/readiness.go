package api

import (
	"context"
	"sync"

	"github.com/garnizeh/fallwatch/pkg/repository"
)

// Store bundles the repositories handlers use once initialization completes.
type Store struct {
	Users   repository.UserRepo
	People  repository.PersonRepo
	Devices repository.DeviceRepo
}

// Gate holds the memoized outcome of store initialization. It is constructed
// at startup and injected into the router; initialization completes exactly
// once, and every request either proceeds with the initialized store or gets
// a service-unavailable reply.
type Gate struct {
	done  chan struct{}
	once  sync.Once
	store *Store
	err   error
}

func NewGate() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Ready publishes the initialized store. Later calls to Ready or Fail are
// no-ops.
func (g *Gate) Ready(s *Store) {
	g.once.Do(func() {
		g.store = s
		close(g.done)
	})
}

// Fail publishes the initialization error. Later calls to Ready or Fail are
// no-ops.
func (g *Gate) Fail(err error) {
	g.once.Do(func() {
		g.err = err
		close(g.done)
	})
}

// Await blocks until initialization completes or ctx is done. It returns the
// store on success and the memoized initialization error on failure.
func (g *Gate) Await(ctx context.Context) (*Store, error) {
	select {
	case <-g.done:
		return g.store, g.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Store returns the initialized store bundle. Only meaningful after Await
// has returned successfully; the readiness middleware guarantees that for
// every handler behind it.
func (g *Gate) Store() *Store {
	return g.store
}
