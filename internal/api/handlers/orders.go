package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleListOrders handles GET /v1/orders
func HandleListOrders(svc OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		orders, err := svc.History(c.Request.Context(), userID)
		if err != nil {
			respondError(c, logger, "list orders", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// HandleRefundOrder handles POST /v1/orders/:id/refund
func HandleRefundOrder(svc OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		orderID, ok := int64Param(c, "id")
		if !ok {
			return
		}

		if err := svc.Refund(c.Request.Context(), userID, orderID); err != nil {
			respondError(c, logger, "refund order", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"order_id": orderID,
			"status":   "refunded",
		})
	}
}
