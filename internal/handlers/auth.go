package handlers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/smartstock/inventory_shop/internal/hash"
	"github.com/smartstock/inventory_shop/internal/logging"
)

const accessTokenTTL = 12 * time.Hour

// AuthHandler gates the admin surface. There is a single admin identity from
// the environment; shopper checkout stays guest-only.
type AuthHandler struct {
	JWTSecret         []byte
	AdminEmail        string
	AdminPasswordHash string
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.Email != h.AdminEmail || !hash.CheckPassword(h.AdminPasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "bad credentials")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  req.Email,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.JWTSecret)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign token")
	}

	c.SetCookie(CreateCookie("accessToken", signed, "/", now.Add(accessTokenTTL)))

	l.Info("login_success", "email", req.Email)
	return c.JSON(http.StatusOK, map[string]string{"access_token": signed})
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	c.SetCookie(CreateCookie("accessToken", "", "/", time.Unix(0, 0)))
	return c.NoContent(http.StatusNoContent)
}
