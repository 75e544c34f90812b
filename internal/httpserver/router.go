package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/shophub/backend/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	SearchHandler  *SearchHTTP // nil when elasticsearch is not configured
	AuthMW         *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "ShopHub Backend API is running!",
			"endpoints": echo.Map{
				"auth":     "/api/auth",
				"products": "/api/products",
				"cart":     "/api/cart",
				"orders":   "/api/orders",
			},
		})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.GET("/me", d.AuthHandler.Me, d.AuthMW.RequireAuth)

	// Catalog reads are public, mutations only require authentication.
	// There is deliberately no role check here.
	products := api.Group("/products")
	products.GET("", d.ProductHandler.List)
	products.GET("/:id", d.ProductHandler.Get)
	products.POST("", d.ProductHandler.Create, d.AuthMW.RequireAuth)
	products.PUT("/:id", d.ProductHandler.Update, d.AuthMW.RequireAuth)
	products.DELETE("/:id", d.ProductHandler.Delete, d.AuthMW.RequireAuth)
	if d.SearchHandler != nil {
		products.GET("/search", d.SearchHandler.Search)
	}

	cart := api.Group("/cart", d.AuthMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PUT("/:id", d.CartHandler.UpdateCartItem)
	cart.DELETE("/clear/all", d.CartHandler.ClearCart)
	cart.DELETE("/:product_id", d.CartHandler.RemoveFromCart)

	orders := api.Group("/orders", d.AuthMW.RequireAuth)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
}
