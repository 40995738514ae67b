package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/service"
)

// HandleGetBook handles GET /v1/books/:id
func HandleGetBook(svc BookService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID, ok := int64Param(c, "id")
		if !ok {
			return
		}

		detail, err := svc.Detail(c.Request.Context(), bookID)
		if err != nil {
			respondError(c, logger, "get book", err)
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

// HandleListComments handles GET /v1/books/:id/comments
func HandleListComments(svc BookService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID, ok := int64Param(c, "id")
		if !ok {
			return
		}

		comments, err := svc.Comments(c.Request.Context(), bookID)
		if err != nil {
			respondError(c, logger, "list comments", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"comments": comments})
	}
}

// HandleCreateComment handles POST /v1/books/:id/comments
func HandleCreateComment(svc BookService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		bookID, ok := int64Param(c, "id")
		if !ok {
			return
		}

		var req service.CommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		comment, err := svc.AddComment(c.Request.Context(), userID, bookID, req.Content)
		if err != nil {
			respondError(c, logger, "create comment", err)
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

// HandleUpdateComment handles PUT /v1/comments/:id
func HandleUpdateComment(svc BookService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		commentID, ok := int64Param(c, "id")
		if !ok {
			return
		}

		var req service.CommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		comment, err := svc.EditComment(c.Request.Context(), userID, commentID, req.Content)
		if err != nil {
			respondError(c, logger, "update comment", err)
			return
		}
		c.JSON(http.StatusOK, comment)
	}
}

// HandleDeleteComment handles DELETE /v1/comments/:id
func HandleDeleteComment(svc BookService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		commentID, ok := int64Param(c, "id")
		if !ok {
			return
		}

		if err := svc.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
			respondError(c, logger, "delete comment", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
