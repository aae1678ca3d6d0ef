package cartstore

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartstock/inventory_shop/internal/models"
)

func newGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	store, err := NewGormStore(db)
	require.NoError(t, err)
	return store
}

func TestGormStoreGetMissingSessionReturnsEmptyCart(t *testing.T) {
	store := newGormStore(t)

	cart, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.NotNil(t, cart)
	require.Empty(t, cart.Items)
}

func TestGormStoreRoundTripPreservesItemOrder(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()

	cart := &models.Cart{Items: []models.CartItem{
		{ProductID: 3, Quantity: 1, Product: &models.Product{ID: 3, Name: "c", Price: 2}},
		{ProductID: 1, Quantity: 4},
		{ProductID: 2, Quantity: 2},
	}}
	require.NoError(t, store.Save(ctx, "s1", cart))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	require.Equal(t, uint(3), got.Items[0].ProductID)
	require.Equal(t, uint(1), got.Items[1].ProductID)
	require.Equal(t, uint(2), got.Items[2].ProductID)
	require.NotNil(t, got.Items[0].Product)
	require.Equal(t, "c", got.Items[0].Product.Name)
}

func TestGormStoreSaveReplacesWholeCart(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", &models.Cart{Items: []models.CartItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	}}))
	require.NoError(t, store.Save(ctx, "s1", &models.Cart{Items: []models.CartItem{
		{ProductID: 9, Quantity: 5},
	}}))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, uint(9), got.Items[0].ProductID)
}

func TestGormStoreClear(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", &models.Cart{Items: []models.CartItem{{ProductID: 1, Quantity: 1}}}))
	require.NoError(t, store.Clear(ctx, "s1"))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, got.Items)

	// clearing an already-empty session is fine
	require.NoError(t, store.Clear(ctx, "s1"))
}

func TestGormStoreSessionsAreIsolated(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", &models.Cart{Items: []models.CartItem{{ProductID: 1, Quantity: 1}}}))
	require.NoError(t, store.Save(ctx, "b", &models.Cart{Items: []models.CartItem{{ProductID: 2, Quantity: 2}}}))

	a, err := store.Get(ctx, "a")
	require.NoError(t, err)
	b, err := store.Get(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, uint(1), a.Items[0].ProductID)
	require.Equal(t, uint(2), b.Items[0].ProductID)
}
