package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/api/middleware"
	"github.com/swims/storefront/internal/service"
)

// SearchSessionHeader scopes "last request wins" to one browser tab
const SearchSessionHeader = "X-Search-Session"

// HandleListBooks handles GET /v1/books
func HandleListBooks(svc CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		books, err := svc.Browse(c.Request.Context(), c.Query("genre"))
		if err != nil {
			respondError(c, logger, "list books", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"books": books})
	}
}

// HandleSearchBooks handles GET /v1/books/search
func HandleSearchBooks(svc CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params service.SearchParams
		if err := c.ShouldBindQuery(&params); err != nil {
			bindError(c, err)
			return
		}

		var userID int64
		if user, ok := middleware.GetUserFromContext(c); ok {
			userID = user.ID
		}

		books, err := svc.Search(c.Request.Context(), c.GetHeader(SearchSessionHeader), userID, params)
		if err != nil {
			if service.IsSuperseded(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "superseded"})
				return
			}
			respondError(c, logger, "search books", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"query": params.Query,
			"books": books,
		})
	}
}

// HandleSuggestions handles GET /v1/books/suggestions
func HandleSuggestions(svc CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		suggestions, err := svc.Suggestions(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondError(c, logger, "suggestions", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
	}
}

// HandleSubmitRating handles POST /v1/books/:id/ratings
func HandleSubmitRating(svc CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		bookID, ok := int64Param(c, "id")
		if !ok {
			return
		}

		var req service.RatingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		if err := svc.SubmitRating(c.Request.Context(), userID, bookID, req.Score); err != nil {
			respondError(c, logger, "submit rating", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
