package token

import (
	"context"
	"errors"
)

// Client is the external fungible-token service the shop settles payments
// through. The shop only consumes the transfer/balance capability; token
// accounting itself lives on the other side of this interface.
type Client interface {
	// TransferFrom moves amount from owner to recipient on the caller's
	// standing allowance.
	TransferFrom(ctx context.Context, owner, recipient string, amount uint64) error
	BalanceOf(ctx context.Context, addr string) (uint64, error)
}

var (
	ErrInsufficientFunds = errors.New("not enough funds")
	ErrNoAllowance       = errors.New("no allowance")
)
