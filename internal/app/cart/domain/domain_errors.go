package domain

import "errors"

// Domain errors as sentinel values. Cart mutations never fail; these are
// raised by the operations built on top of a cart.
var (
	ErrEmptyCart = errors.New("cart is empty")
)
