package walker

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Registry tracks live walks per server process. Walk state is deliberately
// not persisted: a restart drops all walks and clients simply start new ones.
type Registry struct {
	fetcher Fetcher

	mu    sync.RWMutex
	walks map[uuid.UUID]*Walker
}

func NewRegistry(fetcher Fetcher) *Registry {
	return &Registry{
		fetcher: fetcher,
		walks:   make(map[uuid.UUID]*Walker),
	}
}

// Start registers a new walker for the user and launches its loop on a
// background context, so the walk outlives the starting request.
func (r *Registry) Start(userID uuid.UUID, entries []Entry) *Walker {
	w := New(userID, entries, r.fetcher)

	r.mu.Lock()
	r.walks[w.ID] = w
	r.mu.Unlock()

	go w.Run(context.Background())
	return w
}

// Get returns the walk only to the user who started it.
func (r *Registry) Get(userID, id uuid.UUID) (*Walker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.walks[id]
	if !ok || w.UserID != userID {
		return nil, false
	}
	return w, true
}

// Remove cancels the walk and forgets it.
func (r *Registry) Remove(userID, id uuid.UUID) bool {
	w, ok := r.Get(userID, id)
	if !ok {
		return false
	}
	w.Cancel()

	r.mu.Lock()
	delete(r.walks, id)
	r.mu.Unlock()
	return true
}
