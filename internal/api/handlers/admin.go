package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/service"
)

// HandleIssueCoupon handles POST /v1/admin/coupons
func HandleIssueCoupon(svc CouponService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.IssueCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		if err := svc.Issue(c.Request.Context(), req); err != nil {
			respondError(c, logger, "issue coupon", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"code":    req.Code,
			"user_id": req.UserID,
		})
	}
}

// HandleListCheckoutEvents handles GET /v1/admin/checkout-events?user_id=&limit=
func HandleListCheckoutEvents(svc AuditService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
		if err != nil || userID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			if limit, err = strconv.Atoi(raw); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
		}

		events, err := svc.ListEvents(c.Request.Context(), userID, limit)
		if err != nil {
			respondError(c, logger, "list checkout events", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"events": events,
			"count":  len(events),
		})
	}
}
