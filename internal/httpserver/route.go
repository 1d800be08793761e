package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

type Deps struct {
	DB              *gorm.DB
	Guard           *authmw.Guard
	AuthHandler     *AuthHTTP
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	WishlistHandler *WishlistHTTP
	BillingHandler  *BillingHTTP
}

// NewDeps wires repository, services and handlers over one database. search may be nil.
func NewDeps(conn *gorm.DB, tk *tokens.Service, events mykafka.Publisher, search service.ProductSearcher) *Deps {
	r := repo.New(conn)
	return &Deps{
		DB:              conn,
		Guard:           &authmw.Guard{Tokens: tk, Users: r},
		AuthHandler:     &AuthHTTP{Svc: &service.AuthService{Repo: r, Tokens: tk, Events: events}},
		CatalogHandler:  &CatalogHTTP{Svc: &service.CatalogService{Repo: r, Search: search, Events: events}},
		CartHandler:     &CartHTTP{Svc: &service.CartService{Repo: r, Events: events}},
		WishlistHandler: &WishlistHTTP{Svc: &service.WishlistService{Repo: r, Events: events}},
		BillingHandler:  &BillingHTTP{Svc: &service.BillingService{Repo: r, Events: events}},
	}
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", d.ready)

	authGroup := e.Group("/auth")
	authGroup.POST("/register", d.AuthHandler.Register)
	authGroup.POST("/login", d.AuthHandler.Login)
	authGroup.GET("/verify", d.AuthHandler.Verify, d.Guard.RequireAuth)
	authGroup.POST("/verify", d.AuthHandler.Verify, d.Guard.RequireAuth)
	authGroup.GET("/profile", d.AuthHandler.Profile, d.Guard.RequireAuth)
	authGroup.PUT("/profile", d.AuthHandler.UpdateProfile, d.Guard.RequireAuth)

	products := e.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:productId", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct)

	customerOnly := authmw.RequireRole(models.RoleCustomer)

	cart := e.Group("/cart", d.Guard.RequireAuth, customerOnly)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.POST("/checkout", d.CartHandler.Checkout)
	cart.DELETE("/clear", d.CartHandler.Clear)
	cart.PUT("/:itemId", d.CartHandler.UpdateItem)
	cart.DELETE("/:itemId", d.CartHandler.RemoveItem)

	wishlist := e.Group("/wishlist", d.Guard.RequireAuth, customerOnly)
	wishlist.GET("", d.WishlistHandler.GetWishlist)
	wishlist.POST("", d.WishlistHandler.AddToWishlist)
	wishlist.DELETE("/:itemId", d.WishlistHandler.RemoveItem)

	billings := e.Group("/billings")
	billings.GET("", d.BillingHandler.List, d.Guard.RequireAuth)
	billings.POST("/add", d.BillingHandler.Create, d.Guard.OptionalAuth)
}

func (d *Deps) ready(c echo.Context) error {
	if d.DB == nil {
		return c.NoContent(http.StatusOK)
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}
