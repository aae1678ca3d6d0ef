package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartstock/inventory_shop/internal/models"
)

func newTestRepo(t *testing.T) *CatalogRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))
	return &CatalogRepo{DB: db}
}

func seedProducts(t *testing.T, r *CatalogRepo) {
	t.Helper()
	one, two := uint(1), uint(2)
	products := []models.Product{
		{Name: "Alpha keyboard", Description: "mechanical", Price: 50, QuantityInStock: 3, LowStockThreshold: 5, CategoryID: &one},
		{Name: "Beta mouse", Description: "wireless keyboard companion", Price: 20, QuantityInStock: 40, LowStockThreshold: 5, CategoryID: &one},
		{Name: "Gamma shirt", Description: "cotton", Price: 15, QuantityInStock: 8, LowStockThreshold: 10, CategoryID: &two},
	}
	require.NoError(t, r.DB.Create(&products).Error)
}

func TestListProductsQueryIsCaseInsensitive(t *testing.T) {
	r := newTestRepo(t)
	seedProducts(t, r)
	ctx := context.Background()

	total, items, err := r.ListProducts(ctx, ProductFilter{Query: "KEYBOARD"}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	// default sort is name ascending
	require.Equal(t, "Alpha keyboard", items[0].Name)
	require.Equal(t, "Beta mouse", items[1].Name)
}

func TestListProductsFiltersCompose(t *testing.T) {
	r := newTestRepo(t)
	seedProducts(t, r)
	ctx := context.Background()

	one := uint(1)
	min, max := 10.0, 30.0
	total, items, err := r.ListProducts(ctx, ProductFilter{
		CategoryID: &one,
		MinPrice:   &min,
		MaxPrice:   &max,
	}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Beta mouse", items[0].Name)
}

func TestListProductsLowStockOnly(t *testing.T) {
	r := newTestRepo(t)
	seedProducts(t, r)
	ctx := context.Background()

	total, items, err := r.ListProducts(ctx, ProductFilter{LowStock: true}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	for _, p := range items {
		require.True(t, p.LowStock())
	}
}

func TestListProductsSortKeys(t *testing.T) {
	r := newTestRepo(t)
	seedProducts(t, r)
	ctx := context.Background()

	_, items, err := r.ListProducts(ctx, ProductFilter{Sort: "price_desc"}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []float64{50, 20, 15}, []float64{items[0].Price, items[1].Price, items[2].Price})

	_, items, err = r.ListProducts(ctx, ProductFilter{Sort: "stock_asc"}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 3, items[0].QuantityInStock)
	require.Equal(t, 40, items[2].QuantityInStock)

	_, items, err = r.ListProducts(ctx, ProductFilter{Sort: "name_desc"}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, "Gamma shirt", items[0].Name)
}

func TestDecrementStockGuard(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	p := models.Product{Name: "widget", Price: 10, QuantityInStock: 5, LowStockThreshold: 1}
	require.NoError(t, r.DB.Create(&p).Error)

	ok, err := r.DecrementStock(ctx, p.ID, 3)
	require.NoError(t, err)
	require.True(t, ok)

	// only 2 left, requesting 3 must be rejected without going negative
	ok, err = r.DecrementStock(ctx, p.ID, 3)
	require.NoError(t, err)
	require.False(t, ok)

	var got models.Product
	require.NoError(t, r.DB.First(&got, p.ID).Error)
	require.Equal(t, 2, got.QuantityInStock)
}

func TestCounts(t *testing.T) {
	r := newTestRepo(t)
	seedProducts(t, r)
	require.NoError(t, r.DB.Create(&models.Category{Name: "Electronics"}).Error)
	ctx := context.Background()

	products, err := r.CountProducts(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), products)

	categories, err := r.CountCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), categories)

	low, err := r.CountLowStock(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), low)
}
