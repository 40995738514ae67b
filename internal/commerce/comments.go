package commerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/swims/storefront/internal/domain"
)

// BookComments lists the reviews left on a book, oldest first
func (c *Client) BookComments(ctx context.Context, bookID int64) ([]domain.Comment, error) {
	return c.listComments(ctx, "list book comments", fmt.Sprintf(pathBookComments, bookID))
}

// UserComments lists every review a user wrote, with the book inlined
func (c *Client) UserComments(ctx context.Context, userID int64) ([]domain.Comment, error) {
	return c.listComments(ctx, "list user comments", fmt.Sprintf(pathUserComments, userID))
}

func (c *Client) listComments(ctx context.Context, op, path string) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := c.do(ctx, request{op: op, method: http.MethodGet, path: path}, &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

// CreateComment posts a review on a book and returns the stored comment
func (c *Client) CreateComment(ctx context.Context, userID, bookID int64, content string) (*domain.Comment, error) {
	var comment domain.Comment
	err := c.do(ctx, request{
		op:     "create comment",
		method: http.MethodPost,
		path:   fmt.Sprintf(pathCommentCreate, bookID),
		query:  url.Values{"userId": {idString(userID)}, "content": {content}},
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment replaces the text of a review. The API only lets the author edit.
func (c *Client) UpdateComment(ctx context.Context, userID, commentID int64, content string) (*domain.Comment, error) {
	var comment domain.Comment
	err := c.do(ctx, request{
		op:     "update comment",
		method: http.MethodPut,
		path:   fmt.Sprintf(pathComment, commentID),
		query:  url.Values{"userId": {idString(userID)}, "newContent": {content}},
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a review written by userID
func (c *Client) DeleteComment(ctx context.Context, userID, commentID int64) error {
	return c.do(ctx, request{
		op:     "delete comment",
		method: http.MethodDelete,
		path:   fmt.Sprintf(pathComment, commentID),
		query:  url.Values{"userId": {idString(userID)}},
	}, nil)
}
