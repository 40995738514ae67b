package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/domain"
	"github.com/swims/storefront/internal/service"
)

// HandleListInterests handles GET /v1/me/interests
func HandleListInterests(svc MemberService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		interests, err := svc.Interests(c.Request.Context(), userID)
		if err != nil {
			respondError(c, logger, "list interests", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"interests": interests})
	}
}

// HandleAddInterest handles POST /v1/me/interests
func HandleAddInterest(svc MemberService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		var req service.InterestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		if err := svc.AddInterest(c.Request.Context(), userID, req.Genre); err != nil {
			respondError(c, logger, "add interest", err)
			return
		}
		c.Status(http.StatusCreated)
	}
}

// HandleRemoveInterest handles DELETE /v1/me/interests/:genre
func HandleRemoveInterest(svc MemberService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		if err := svc.RemoveInterest(c.Request.Context(), userID, c.Param("genre")); err != nil {
			respondError(c, logger, "remove interest", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleListMyComments handles GET /v1/me/comments
func HandleListMyComments(svc MemberService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		comments, err := svc.Comments(c.Request.Context(), userID)
		if err != nil {
			respondError(c, logger, "list my comments", err)
			return
		}
		if comments == nil {
			comments = []domain.Comment{}
		}
		c.JSON(http.StatusOK, gin.H{"comments": comments})
	}
}
