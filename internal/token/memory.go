package token

import (
	"context"
	"sync"
)

// InMemoryClient is a stand-in token service for tests and for running the
// API without a deployed token backend. Balances and allowances behave like
// the real service: a transfer needs both funds and a spender allowance.
type InMemoryClient struct {
	mu         sync.Mutex
	spender    string
	balances   map[string]uint64
	allowances map[string]map[string]uint64 // owner -> spender -> amount
}

func NewInMemoryClient(spender string) *InMemoryClient {
	return &InMemoryClient{
		spender:    spender,
		balances:   make(map[string]uint64),
		allowances: make(map[string]map[string]uint64),
	}
}

func (c *InMemoryClient) SetBalance(addr string, amount uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[addr] = amount
}

func (c *InMemoryClient) Approve(owner, spender string, amount uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.allowances[owner] == nil {
		c.allowances[owner] = make(map[string]uint64)
	}
	c.allowances[owner][spender] = amount
}

func (c *InMemoryClient) TransferFrom(ctx context.Context, owner, recipient string, amount uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	allowed := c.allowances[owner][c.spender]
	if allowed < amount {
		return ErrNoAllowance
	}
	if c.balances[owner] < amount {
		return ErrInsufficientFunds
	}

	c.allowances[owner][c.spender] = allowed - amount
	c.balances[owner] -= amount
	c.balances[recipient] += amount
	return nil
}

func (c *InMemoryClient) BalanceOf(ctx context.Context, addr string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balances[addr], nil
}
