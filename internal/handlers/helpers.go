package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/smartstock/inventory_shop/internal/mykafka"
	"github.com/smartstock/inventory_shop/internal/validate"
)

const sessionCookieName = "cart_session"

func validationResponse(c echo.Context, errs []validate.FieldError) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"status": "error",
		"errors": errs,
	})
}

// sessionID returns the cart session from the cookie, minting one on first
// contact so a guest gets a cart lazily.
func sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return id
}

func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
	}
}

// publish sends a domain event, best effort. Mutations never fail on a
// broker error.
func publish(c echo.Context, producer mykafka.Publisher, topic, key string, event map[string]any) {
	if producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
