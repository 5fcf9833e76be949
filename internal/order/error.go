package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrItemNotFound      = errors.New("item not found in cart")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrEmptyCheckout     = errors.New("checkout requires at least one item")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)
