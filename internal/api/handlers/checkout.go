package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/api/middleware"
	"github.com/swims/storefront/internal/service"
	apperrors "github.com/swims/storefront/pkg/errors"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// HandleListCoupons handles GET /v1/coupons?subtotal=
func HandleListCoupons(svc CouponService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		var subtotal int64
		if raw := c.Query("subtotal"); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subtotal"})
				return
			}
			subtotal = v
		}

		coupons, err := svc.List(c.Request.Context(), userID, subtotal)
		if err != nil {
			respondError(c, logger, "list coupons", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"coupons": coupons})
	}
}

// HandleQuote handles POST /v1/checkout/quote. A rejected coupon answers 422
// with the undiscounted quote attached.
func HandleQuote(svc CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req service.QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		quote, err := svc.Quote(c.Request.Context(), user, req)
		if err != nil {
			var verr *apperrors.ErrValidation
			if errors.As(err, &verr) && quote != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":   "validation failed",
					"field":   verr.Field,
					"details": verr.Error(),
					"quote":   quote,
				})
				return
			}
			respondError(c, logger, "quote", err)
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

// HandleCheckout handles POST /v1/checkout
func HandleCheckout(svc CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		result, err := svc.Checkout(c.Request.Context(), user, c.GetHeader(IdempotencyKeyHeader), req)
		if err != nil {
			respondError(c, logger, "checkout", err)
			return
		}

		switch {
		case result.Status == service.CheckoutPaymentFailed:
			c.JSON(http.StatusPaymentRequired, result)
		case result.Replayed:
			c.JSON(http.StatusOK, result)
		default:
			c.JSON(http.StatusCreated, result)
		}
	}
}
