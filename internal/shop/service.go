package shop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/mastercodercat/coffee-swap-protocol/internal/token"
)

type Service struct {
	repo   Repository
	tokens token.Client

	// StrictShares requires every recipe's shares to sum to SharePrecision
	// exactly at catalog load. Off by default: the remainder of a partial
	// recipe is untracked filler.
	StrictShares bool

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(repo Repository, tokens token.Client) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		locks:  make(map[string]*sync.Mutex),
	}
}

// shopLock serializes mutating calls per shop key, so check-then-debit
// inside one call can never interleave with another call on the same shop.
func (s *Service) shopLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// --------------------------------------------------
// Instantiate
// --------------------------------------------------
// CreateShop registers a new shop under key with caller as its owner.
// A nil menu/recipes pair falls back to the seed catalog.
func (s *Service) CreateShop(ctx context.Context, caller, key string, menu []CoffeeCup, recipes []CoffeeRecipe) (*State, error) {
	if caller == "" || key == "" {
		return nil, fmt.Errorf("%w: missing caller or shop key", ErrInvalidParam)
	}

	var state *State
	switch {
	case menu == nil && recipes == nil:
		state = SeedState(caller)
	case len(menu) == 0 || len(menu) != len(recipes):
		return nil, fmt.Errorf("%w: menu and recipes must align 1:1", ErrInvalidParam)
	default:
		for _, cup := range menu {
			if cup.Name == "" || cup.Price == 0 {
				return nil, fmt.Errorf("%w: menu entry needs a name and a non-zero price", ErrInvalidParam)
			}
		}
		for _, r := range recipes {
			if err := ValidateRecipe(r, s.StrictShares); err != nil {
				return nil, err
			}
		}
		seed := SeedState(caller)
		state = &State{Owner: caller, Menu: menu, Recipes: recipes, Ledger: seed.Ledger}
	}

	if err := s.repo.Create(ctx, key, state); err != nil {
		return nil, err
	}

	log.Printf("shop %q created, owner=%s", key, caller)
	return state, nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------
func (s *Service) Owner(ctx context.Context, key string) (string, error) {
	state, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return state.Owner, nil
}

func (s *Service) Menu(ctx context.Context, key string) ([]CoffeeCup, error) {
	state, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return state.Menu, nil
}

func (s *Service) Recipes(ctx context.Context, key string) ([]CoffeeRecipe, error) {
	state, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return state.Recipes, nil
}

func (s *Service) Ingredients(ctx context.Context, key string) ([]IngredientPortion, error) {
	state, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return state.Ledger, nil
}

func (s *Service) Price(ctx context.Context, key string, id uint64) (uint64, error) {
	state, err := s.repo.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if id == 0 || id > uint64(len(state.Menu)) {
		return 0, fmt.Errorf("%w: product id %d out of range", ErrInvalidParam, id)
	}
	return state.Menu[id-1].Price, nil
}

func (s *Service) Balance(ctx context.Context, addr string) (uint64, error) {
	return s.tokens.BalanceOf(ctx, addr)
}

// --------------------------------------------------
// Owner mutations
// --------------------------------------------------
func (s *Service) SetPrice(ctx context.Context, caller, key string, id, price uint64) error {
	l := s.shopLock(key)
	l.Lock()
	defer l.Unlock()

	return s.repo.Update(ctx, key, func(state *State) error {
		if caller != state.Owner {
			return ErrUnauthorized
		}
		if id == 0 || id > uint64(len(state.Menu)) || price == 0 {
			return fmt.Errorf("%w: id=%d price=%d", ErrInvalidParam, id, price)
		}
		state.Menu[id-1].Price = price
		return nil
	})
}

func (s *Service) LoadIngredients(ctx context.Context, caller, key string, portions []IngredientPortion) error {
	l := s.shopLock(key)
	l.Lock()
	defer l.Unlock()

	return s.repo.Update(ctx, key, func(state *State) error {
		if caller != state.Owner {
			return ErrUnauthorized
		}
		return state.Restock(portions)
	})
}

// --------------------------------------------------
// Purchase engine
// --------------------------------------------------
// BuyCoffee runs the purchase sequence: validate, compute required
// weights, check sufficiency, collect payment, debit the ledger. Payment
// runs before the debit so a funding failure never needs an ingredient
// rollback; the debit itself happens inside one atomic store update using
// the same required map the check used.
func (s *Service) BuyCoffee(ctx context.Context, buyer, key string, id, cupCount uint64) (*Receipt, error) {
	l := s.shopLock(key)
	l.Lock()
	defer l.Unlock()

	state, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if id == 0 || id > uint64(len(state.Menu)) {
		return nil, fmt.Errorf("%w: product id %d out of range", ErrInvalidParam, id)
	}
	if cupCount == 0 {
		return nil, fmt.Errorf("%w: zero cup count", ErrInvalidParam)
	}

	required, err := RequiredWeights(state.Recipes[id-1], cupCount)
	if err != nil {
		return nil, err
	}
	if !state.Sufficient(required) {
		return nil, ErrNotEnoughIngredients
	}

	total, ok := mul64(state.Menu[id-1].Price, cupCount)
	if !ok {
		return nil, fmt.Errorf("%w: total price overflow", ErrInternal)
	}

	if err := s.tokens.TransferFrom(ctx, buyer, state.Owner, total); err != nil {
		return nil, err
	}

	err = s.repo.Update(ctx, key, func(next *State) error {
		return next.Debit(required)
	})
	if err != nil {
		// Payment settled but the host commit failed; surface as fatal,
		// never as a business rejection.
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: debit after settled payment: %v", ErrInternal, err)
	}

	receipt := &Receipt{
		ID:        uuid.New().String(),
		ShopKey:   key,
		ProductID: id,
		Cups:      cupCount,
		Buyer:     buyer,
		Total:     total,
	}

	log.Printf("purchase settled: shop=%s product=%d cups=%d buyer=%s total=%d",
		key, id, cupCount, buyer, total)

	return receipt, nil
}
