package shop

import (
	"context"
	"sync"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	shops map[string]*State
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		shops: make(map[string]*State),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, key string, state *State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shops[key]; exists {
		return ErrShopExists
	}
	r.shops[key] = state.Clone()
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, key string) (*State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.shops[key]
	if !ok {
		return nil, ErrShopNotFound
	}
	return state.Clone(), nil
}

// Update applies fn to a copy and swaps it in only on success, so a failed
// callback leaves the stored state untouched.
func (r *InMemoryRepository) Update(ctx context.Context, key string, fn func(*State) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.shops[key]
	if !ok {
		return ErrShopNotFound
	}

	next := state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	r.shops[key] = next
	return nil
}
