package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartstock/inventory_shop/internal/logging"
	"github.com/smartstock/inventory_shop/internal/repo"
)

const recentOrdersCount = 5

type DashboardHandler struct {
	Catalog *repo.CatalogRepo
	Orders  *repo.OrderRepo
}

func (h *DashboardHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.index")

	totalProducts, err := h.Catalog.CountProducts(ctx)
	if err != nil {
		l.Error("dashboard_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load dashboard")
	}
	totalCategories, err := h.Catalog.CountCategories(ctx)
	if err != nil {
		l.Error("dashboard_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load dashboard")
	}
	lowStock, err := h.Catalog.CountLowStock(ctx)
	if err != nil {
		l.Error("dashboard_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load dashboard")
	}
	recent, err := h.Orders.ListRecent(ctx, recentOrdersCount)
	if err != nil {
		l.Error("dashboard_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load dashboard")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total_products":     totalProducts,
		"total_categories":   totalCategories,
		"low_stock_products": lowStock,
		"recent_orders":      recent,
	})
}
