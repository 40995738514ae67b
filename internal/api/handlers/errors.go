package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/api/middleware"
	apperrors "github.com/swims/storefront/pkg/errors"
)

// respondError maps service errors to HTTP responses. Anything unrecognised
// is logged and reported as a 500.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var (
		validation    *apperrors.ErrValidation
		notFound      *apperrors.ErrNotFound
		unauthorized  *apperrors.ErrUnauthorized
		notRefundable *apperrors.ErrNotRefundable
		conflict      *apperrors.ErrConflict
		upstream      *apperrors.ErrUpstream
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"field":   validation.Field,
			"details": validation.Error(),
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": unauthorized.Error()})
	case errors.As(err, &notRefundable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  notRefundable.Error(),
			"reason": string(notRefundable.Reason),
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.As(err, &upstream):
		logger.Warn("Commerce API call failed",
			zap.String("operation", op),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		body := gin.H{"error": upstream.Operation + " failed"}
		if upstream.StatusCode != 0 {
			body["upstream_status"] = upstream.StatusCode
			body["details"] = upstream.Body
		}
		c.JSON(http.StatusBadGateway, body)
	default:
		logger.Error("Request failed",
			zap.String("operation", op),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation failed",
		"details": err.Error(),
	})
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func requireUser(c *gin.Context) (int64, bool) {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}
	return user.ID, true
}
