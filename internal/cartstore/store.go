// Package cartstore keeps per-session shopping carts. A cart round-trips as a
// JSON blob keyed by session id and is always replaced wholesale on write.
package cartstore

import (
	"context"

	"github.com/smartstock/inventory_shop/internal/models"
)

// Store is the cart contract consumed by the checkout service. Get never
// fails on a missing session: it returns an empty cart instead.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.Cart, error)
	Save(ctx context.Context, sessionID string, cart *models.Cart) error
	Clear(ctx context.Context, sessionID string) error
}

func emptyCart() *models.Cart {
	return &models.Cart{Items: []models.CartItem{}}
}
