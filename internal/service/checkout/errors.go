package checkout

import "errors"

// Recoverable validation errors are surfaced to the shopper as-is; the cart
// and stock are left untouched. ErrPersistence covers store-level failures
// after the staged writes rolled back.
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrMissingContactInfo = errors.New("guest name and email are required")
	ErrProductUnavailable = errors.New("product no longer available")
	ErrInsufficientStock  = errors.New("not enough stock available")
	ErrPersistence        = errors.New("persistence failure")
)

func IsValidationError(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrMissingContactInfo) ||
		errors.Is(err, ErrProductUnavailable) ||
		errors.Is(err, ErrInsufficientStock)
}
