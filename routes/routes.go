package routes

import (
	"net/http"

	"luxreplica-backend/config"
	"luxreplica-backend/handlers"
	"luxreplica-backend/middleware"
	"luxreplica-backend/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the storefront API on r. The returned rate limiter
// guards cart mutations; callers stop it on shutdown.
func SetupRoutes(r *gin.Engine, store storage.Storage, cfg config.Config) *middleware.RateLimiter {
	// Initialize handlers
	categoryHandler := &handlers.CategoryHandler{Store: store}
	productHandler := &handlers.ProductHandler{Store: store}
	cartHandler := &handlers.CartHandler{Store: store}

	session := middleware.SessionConfig{MaxAge: cfg.Cookie.MaxAge, Secure: cfg.Cookie.Secure}
	cartSession := middleware.CartSession(session)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	api := r.Group("/api")
	{
		// Catalog routes
		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:slug", categoryHandler.GetCategory)
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:slug", productHandler.GetProduct)

		// Cart routes
		cart := api.Group("/cart", cartSession)
		cart.GET("", cartHandler.GetCart)
		cart.POST("", limiter.Middleware(), cartHandler.AddToCart)
		cart.PUT("/:id", limiter.Middleware(), cartHandler.UpdateCartItem)
		cart.DELETE("/:id", limiter.Middleware(), cartHandler.RemoveFromCart)
		cart.DELETE("", limiter.Middleware(), cartHandler.ClearCart)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return limiter
}
