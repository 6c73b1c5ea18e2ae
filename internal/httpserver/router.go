package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"springjewels-storefront/internal/backend"
	"springjewels-storefront/internal/cart"
	"springjewels-storefront/internal/checkout"
	"springjewels-storefront/internal/wishlist"
)

// Deps carries everything the routes need.
type Deps struct {
	Backend   *backend.Client
	Carts     cart.Stores
	Wishlists *wishlist.Sessions
	Payments  checkout.Provider
	USDRate   int64
}

// buildRouter wires the storefront gateway routes.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger, checkouts: newCheckoutSessions(deps, logger)}

	api := router.Group("/api", cartSessionMiddleware())
	{
		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)
		api.GET("/products/:id/reviews", h.listReviews)
		api.POST("/products/:id/reviews", h.createReview)
		api.GET("/categories", h.listCategories)

		api.POST("/auth/login", h.login)
		api.POST("/auth/register", h.register)
		api.POST("/auth/logout", h.logout)

		api.GET("/profile", h.getProfile)
		api.PUT("/profile", h.updateProfile)
		api.PUT("/profile/change-password", h.changePassword)

		api.GET("/addresses", h.listAddresses)
		api.POST("/addresses", h.createAddress)
		api.PUT("/addresses/:id", h.updateAddress)
		api.DELETE("/addresses/:id", h.deleteAddress)

		api.GET("/orders/my-history", h.orderHistory)
		api.PUT("/orders/:id/cancel", h.cancelOrder)

		api.GET("/cart", h.getCart)
		api.POST("/cart/items", h.addCartItem)
		api.PUT("/cart/items/:productId", h.setCartQuantity)
		api.DELETE("/cart/items/:productId", h.removeCartItem)
		api.DELETE("/cart", h.clearCart)

		api.GET("/wishlist", h.getWishlist)
		api.GET("/wishlist/status/:productId", h.wishlistStatus)
		api.POST("/wishlist/:productId/toggle", h.toggleWishlist)

		api.POST("/checkout", h.startCheckout)
		api.GET("/checkout", h.checkoutState)
		api.PUT("/checkout/address", h.selectCheckoutAddress)
		api.POST("/checkout/payment-order", h.createPaymentOrder)
		api.POST("/checkout/complete", h.completeCheckout)
		api.DELETE("/checkout", h.abandonCheckout)

		admin := api.Group("/admin")
		{
			admin.GET("/products", h.adminListProducts)
			admin.POST("/products", h.adminCreateProduct)
			admin.PUT("/products/:id", h.adminUpdateProduct)
			admin.DELETE("/products/:id", h.adminDeleteProduct)
			admin.GET("/categories", h.adminListCategories)
			admin.POST("/categories", h.adminCreateCategory)
			admin.PUT("/categories/:id", h.adminUpdateCategory)
			admin.DELETE("/categories/:id", h.adminDeleteCategory)
			admin.GET("/orders", h.adminListOrders)
			admin.PUT("/orders/:id/status", h.adminUpdateOrderStatus)
			admin.PUT("/orders/:id/address", h.adminUpdateOrderAddress)
		}
	}

	return router
}

type handlers struct {
	deps      Deps
	logger    *log.Logger
	checkouts *checkoutSessions
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "cart db not reachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
