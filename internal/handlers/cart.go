package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/smartstock/inventory_shop/internal/logging"
	"github.com/smartstock/inventory_shop/internal/mail"
	"github.com/smartstock/inventory_shop/internal/mykafka"
	"github.com/smartstock/inventory_shop/internal/service/checkout"
)

type CartHandler struct {
	Checkout *checkout.Service
	Producer mykafka.Publisher
	Mail     mail.Sender
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	sid := sessionID(c)
	cart, err := h.Checkout.Carts.Get(ctx, sid)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load cart")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"items":      cart.Items,
		"total_cost": cart.TotalCost(),
	})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sid := sessionID(c)
	cart, err := h.Checkout.AddItem(ctx, sid, req.ProductID)
	if err != nil {
		if errors.Is(err, checkout.ErrProductNotFound) {
			l.Warn("add_to_cart_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add to cart")
	}

	publish(c, h.Producer, "cart_events", sid, map[string]any{
		"type":      "cart_item_added",
		"sessionID": sid,
		"productID": req.ProductID,
	})

	l.Info("add_to_cart_success", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, map[string]any{
		"items":      cart.Items,
		"total_cost": cart.TotalCost(),
	})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_from_cart")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	sid := sessionID(c)
	cart, err := h.Checkout.RemoveItem(ctx, sid, uint(id))
	if err != nil {
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove from cart")
	}

	publish(c, h.Producer, "cart_events", sid, map[string]any{
		"type":      "cart_item_removed",
		"sessionID": sid,
		"productID": id,
	})

	return c.JSON(http.StatusOK, map[string]any{
		"items":      cart.Items,
		"total_cost": cart.TotalCost(),
	})
}

// CheckoutView gates entry to the checkout page: it fails on an empty cart
// the same way order placement does.
func (h *CartHandler) CheckoutView(c echo.Context) error {
	ctx := c.Request().Context()

	sid := sessionID(c)
	cart, err := h.Checkout.Carts.Get(ctx, sid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load cart")
	}
	if err := h.Checkout.ValidateForCheckout(cart); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"items":      cart.Items,
		"total_cost": cart.TotalCost(),
	})
}

func (h *CartHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.place_order")

	var req struct {
		GuestName       string `json:"guest_name"`
		GuestEmail      string `json:"guest_email"`
		PhoneNumber     string `json:"phone_number"`
		ShippingAddress string `json:"shipping_address"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sid := sessionID(c)
	order, err := h.Checkout.PlaceOrder(ctx, sid, checkout.ContactInfo{
		Name:    req.GuestName,
		Email:   req.GuestEmail,
		Phone:   req.PhoneNumber,
		Address: req.ShippingAddress,
	})
	if err != nil {
		if checkout.IsValidationError(err) {
			l.Warn("place_order_rejected", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("place_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot place order")
	}

	publish(c, h.Producer, "order_events", sid, map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"email":   order.Email,
		"total":   order.TotalPrice,
	})

	if h.Mail != nil {
		subject, body := mail.OrderConfirmation(order)
		if err := h.Mail.Send(order.Email, subject, body); err != nil {
			l.Error("order_confirmation_mail_failed", "order_id", order.ID, "error", err)
		}
	}

	l.Info("place_order_success", "order_id", order.ID, "total", order.TotalPrice)
	return c.JSON(http.StatusCreated, order)
}
