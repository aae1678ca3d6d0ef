package repo

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartstock/inventory_shop/internal/models"
)

func newOrderRepo(t *testing.T) *OrderRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return &OrderRepo{DB: db}
}

func makeOrder(email string, placed time.Time) *models.Order {
	return &models.Order{
		OrderDate:  placed,
		GuestName:  "Jane",
		Email:      email,
		TotalPrice: 30,
		Status:     models.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 3, UnitPrice: 10},
		},
	}
}

func TestCreateAndGetOrder(t *testing.T) {
	r := newOrderRepo(t)
	ctx := context.Background()

	order := makeOrder("jane@x.com", time.Now().UTC())
	require.NoError(t, r.CreateOrder(ctx, order))
	require.NotZero(t, order.ID)

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, "jane@x.com", got.Email)
	require.Len(t, got.Items, 1)
	require.Equal(t, order.ID, got.Items[0].OrderID)
	require.Equal(t, 30.0, got.Items[0].TotalPrice())
}

func TestListByEmailNewestFirst(t *testing.T) {
	r := newOrderRepo(t)
	ctx := context.Background()

	base := time.Now().UTC()
	older := makeOrder("jane@x.com", base.Add(-time.Hour))
	newer := makeOrder("jane@x.com", base)
	other := makeOrder("john@x.com", base)
	require.NoError(t, r.CreateOrder(ctx, older))
	require.NoError(t, r.CreateOrder(ctx, newer))
	require.NoError(t, r.CreateOrder(ctx, other))

	orders, err := r.ListByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, newer.ID, orders[0].ID)
	require.Equal(t, older.ID, orders[1].ID)
}

func TestListRecentLimits(t *testing.T) {
	r := newOrderRepo(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 7; i++ {
		require.NoError(t, r.CreateOrder(ctx, makeOrder("jane@x.com", base.Add(time.Duration(i)*time.Minute))))
	}

	orders, err := r.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, orders, 5)
	require.True(t, orders[0].OrderDate.After(orders[4].OrderDate))
}

func TestUpdateStatus(t *testing.T) {
	r := newOrderRepo(t)
	ctx := context.Background()

	order := makeOrder("jane@x.com", time.Now().UTC())
	require.NoError(t, r.CreateOrder(ctx, order))

	updated, err := r.UpdateStatus(ctx, order.ID, "Shipped")
	require.NoError(t, err)
	require.Equal(t, "Shipped", updated.Status)

	_, err = r.UpdateStatus(ctx, 999, "Shipped")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	r := newOrderRepo(t)
	ctx := context.Background()

	order := makeOrder("jane@x.com", time.Now().UTC())
	require.NoError(t, r.CreateOrder(ctx, order))
	require.NoError(t, r.DeleteOrder(ctx, order.ID))

	var items int64
	require.NoError(t, r.DB.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&items).Error)
	require.Equal(t, int64(0), items)

	require.ErrorIs(t, r.DeleteOrder(ctx, order.ID), gorm.ErrRecordNotFound)
}
