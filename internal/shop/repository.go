package shop

import "context"

// Repository is the key-addressed shop-state store. One shop key maps to
// exactly one State; keys never interact.
//
// Update is the single transaction boundary: the callback runs against the
// current state and either every mutation it makes is persisted or, if it
// returns an error, none are.
type Repository interface {
	Create(ctx context.Context, key string, state *State) error
	Get(ctx context.Context, key string) (*State, error)
	Update(ctx context.Context, key string, fn func(*State) error) error
}
