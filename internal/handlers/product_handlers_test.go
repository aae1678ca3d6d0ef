package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/smartstock/inventory_shop/internal/models"
)

func TestCreateProductHandler(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]any{
		"name":                "widget",
		"description":         "a widget",
		"price":               9.99,
		"quantity_in_stock":   5,
		"low_stock_threshold": 2,
	}

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/products", load)
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)
	require.Equal(t, "widget", resp.Name)
	require.Equal(t, 9.99, resp.Price)
}

func TestCreateProductHandlerValidation(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]any{"name": "", "price": -1}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/products", load)
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Status string `json:"status"`
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "error", resp.Status)
	require.NotEmpty(t, resp.Errors)
}

func TestGetProductsHandlerFilters(t *testing.T) {
	env := newTestEnv(t)
	one := uint(1)
	require.NoError(t, env.DB.Create(&[]models.Product{
		{Name: "Alpha keyboard", Price: 50, QuantityInStock: 3, LowStockThreshold: 5, CategoryID: &one},
		{Name: "Beta mouse", Price: 20, QuantityInStock: 40, LowStockThreshold: 5, CategoryID: &one},
		{Name: "Gamma shirt", Price: 15, QuantityInStock: 8, LowStockThreshold: 10},
	}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products?low_stock=true&sort=price_asc", nil)
	require.NoError(t, env.P.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
		Meta map[string]any   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, "Gamma shirt", resp.Data[0].Name)
	require.Equal(t, "Alpha keyboard", resp.Data[1].Name)
}

func TestGetProductHandlerNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/products/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")
	err := env.P.GetProduct(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, he.Code)
}
