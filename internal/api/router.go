package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/api/handlers"
	"github.com/swims/storefront/internal/api/middleware"
	"github.com/swims/storefront/internal/config"
)

// Services bundles what the handlers call
type Services struct {
	Users    middleware.UserLookup
	Catalog  handlers.CatalogService
	Books    handlers.BookService
	Members  handlers.MemberService
	Cart     handlers.CartService
	Coupons  handlers.CouponService
	Checkout handlers.CheckoutService
	Orders   handlers.OrderService
	Audit    handlers.AuditService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc *Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		// Catalog routes work signed in or not; a signed-in search is recorded
		books := v1.Group("/books")
		books.Use(middleware.OptionalAuthMiddleware(svc.Users, logger))
		{
			books.GET("", handlers.HandleListBooks(svc.Catalog, logger))
			books.GET("/search", handlers.HandleSearchBooks(svc.Catalog, logger))
			books.GET("/suggestions", handlers.HandleSuggestions(svc.Catalog, logger))
			books.GET("/:id", handlers.HandleGetBook(svc.Books, logger))
			books.GET("/:id/comments", handlers.HandleListComments(svc.Books, logger))
		}

		userRoutes := v1.Group("")
		userRoutes.Use(middleware.AuthMiddleware(svc.Users, logger))
		{
			userRoutes.POST("/books/:id/ratings", handlers.HandleSubmitRating(svc.Catalog, logger))
			userRoutes.POST("/books/:id/comments", handlers.HandleCreateComment(svc.Books, logger))
			userRoutes.PUT("/comments/:id", handlers.HandleUpdateComment(svc.Books, logger))
			userRoutes.DELETE("/comments/:id", handlers.HandleDeleteComment(svc.Books, logger))

			userRoutes.GET("/me/interests", handlers.HandleListInterests(svc.Members, logger))
			userRoutes.POST("/me/interests", handlers.HandleAddInterest(svc.Members, logger))
			userRoutes.DELETE("/me/interests/:genre", handlers.HandleRemoveInterest(svc.Members, logger))
			userRoutes.GET("/me/comments", handlers.HandleListMyComments(svc.Members, logger))

			userRoutes.GET("/cart", handlers.HandleGetCart(svc.Cart, logger))
			userRoutes.POST("/cart/items", handlers.HandleAddCartItem(svc.Cart, logger))
			userRoutes.PUT("/cart/items/:bookId", handlers.HandleUpdateCartItem(svc.Cart, logger))
			userRoutes.DELETE("/cart/items", handlers.HandleRemoveCartItems(svc.Cart, logger))

			userRoutes.GET("/coupons", handlers.HandleListCoupons(svc.Coupons, logger))

			userRoutes.POST("/checkout/quote", handlers.HandleQuote(svc.Checkout, logger))
			userRoutes.POST("/checkout", handlers.HandleCheckout(svc.Checkout, logger))

			userRoutes.GET("/orders", handlers.HandleListOrders(svc.Orders, logger))
			userRoutes.POST("/orders/:id/refund", handlers.HandleRefundOrder(svc.Orders, logger))
		}

		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminMiddleware(cfg.API.AdminAPIKeyHash, logger))
		{
			adminRoutes.POST("/coupons", handlers.HandleIssueCoupon(svc.Coupons, logger))
			adminRoutes.GET("/checkout-events", handlers.HandleListCheckoutEvents(svc.Audit, logger))
		}
	}

	return router
}

// WithCORS wraps the router for browser clients on the configured origins
func WithCORS(cfg config.APIConfig, h http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Content-Type",
			middleware.UserIDHeader,
			middleware.RequestIDHeader,
			handlers.IdempotencyKeyHeader,
			handlers.SearchSessionHeader,
		},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})(h)
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetRequestID(c)),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("HTTP request", fields...)
			return
		}
		logger.Info("HTTP request", fields...)
	}
}
