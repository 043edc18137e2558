package shop

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidParam         = errors.New("invalid param")
	ErrNotEnoughIngredients = errors.New("not enough ingredients")
	ErrShopNotFound         = errors.New("shop not found")
	ErrShopExists           = errors.New("shop already exists")

	// ErrInternal marks invariant violations (arithmetic overflow, debit
	// underflow after a passed check). Never expected in normal operation.
	ErrInternal = errors.New("internal error")
)
