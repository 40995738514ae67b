package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/service"
)

// HandleGetCart handles GET /v1/cart
func HandleGetCart(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		cart, err := svc.Get(c.Request.Context(), userID)
		if err != nil {
			respondError(c, logger, "get cart", err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// HandleAddCartItem handles POST /v1/cart/items
func HandleAddCartItem(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		var req service.LineItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		if err := svc.Add(c.Request.Context(), userID, req); err != nil {
			respondError(c, logger, "add to cart", err)
			return
		}
		c.Status(http.StatusCreated)
	}
}

// HandleUpdateCartItem handles PUT /v1/cart/items/:bookId
func HandleUpdateCartItem(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		bookID, ok := int64Param(c, "bookId")
		if !ok {
			return
		}

		var req service.UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		if err := svc.UpdateQuantity(c.Request.Context(), userID, bookID, req.Quantity); err != nil {
			respondError(c, logger, "update cart", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleRemoveCartItems handles DELETE /v1/cart/items
func HandleRemoveCartItems(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		var req service.RemoveCartItemsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		if err := svc.Remove(c.Request.Context(), userID, req.BookIDs); err != nil {
			respondError(c, logger, "remove cart items", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
