package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/smartstock/inventory_shop/internal/handlers"
	"github.com/smartstock/inventory_shop/internal/middleware/auth"
)

type Deps struct {
	DB               *gorm.DB
	JWTSecret        []byte
	AuthHandler      *handlers.AuthHandler
	ProductHandler   *handlers.ProductHandler
	CategoryHandler  *handlers.CategoryHandler
	CartHandler      *handlers.CartHandler
	OrderHandler     *handlers.OrderHandler
	DashboardHandler *handlers.DashboardHandler
	SearchHandler    *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.LogOut)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	categories := v1.Group("/categories")
	categories.GET("", d.CategoryHandler.GetCategories)
	categories.GET("/:id", d.CategoryHandler.GetCategory)

	cart := v1.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)
	cart.GET("/checkout", d.CartHandler.CheckoutView)
	cart.POST("/checkout", d.CartHandler.PlaceOrder)

	orders := v1.Group("/orders")
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("/track", d.OrderHandler.Track)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	admin := v1.Group("/admin", auth.AdminOnly(d.JWTSecret))
	admin.GET("/dashboard", d.DashboardHandler.Index)

	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	admin.POST("/categories", d.CategoryHandler.CreateCategory)
	admin.PATCH("/categories/:id", d.CategoryHandler.PatchCategory)
	admin.DELETE("/categories/:id", d.CategoryHandler.DeleteCategory)

	admin.GET("/orders", d.OrderHandler.GetOrders)
	admin.PATCH("/orders/:id", d.OrderHandler.UpdateStatus)
	admin.DELETE("/orders/:id", d.OrderHandler.DeleteOrder)
}
