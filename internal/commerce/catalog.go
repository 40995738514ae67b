package commerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/swims/storefront/internal/domain"
)

// ListBooks fetches the whole catalog
func (c *Client) ListBooks(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	err := c.do(ctx, request{op: "list books", method: http.MethodGet, path: pathBooks}, &books)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// SearchBooks runs a substring search on one book field. userID is forwarded
// when known so the API can personalize; zero means anonymous.
func (c *Client) SearchBooks(ctx context.Context, field SearchField, term string, userID int64) ([]domain.Book, error) {
	q := url.Values{}
	q.Set(string(field), term)
	if userID != 0 {
		q.Set("userId", idString(userID))
	}

	var books []domain.Book
	err := c.do(ctx, request{
		op:     fmt.Sprintf("search books by %s", field),
		method: http.MethodGet,
		path:   pathBookSearch,
		query:  q,
	}, &books)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// AverageRating returns the mean review score of a book. ok is false when the
// book has no ratings yet.
func (c *Client) AverageRating(ctx context.Context, bookID int64) (avg float64, ok bool, err error) {
	var out *float64
	err = c.do(ctx, request{
		op:     "get average rating",
		method: http.MethodGet,
		path:   pathRatingAverage,
		query:  url.Values{"bookId": {idString(bookID)}},
	}, &out)
	if err != nil {
		return 0, false, err
	}
	if out == nil || *out == 0 {
		return 0, false, nil
	}
	return *out, true, nil
}

// SubmitRating records a user's score for a book
func (c *Client) SubmitRating(ctx context.Context, userID, bookID int64, score int) error {
	return c.do(ctx, request{
		op:     "submit rating",
		method: http.MethodPost,
		path:   pathRatings,
		query: url.Values{
			"userId": {idString(userID)},
			"bookId": {idString(bookID)},
			"score":  {fmt.Sprintf("%d", score)},
		},
	}, nil)
}

// RecordSearch appends a keyword to the user's search history
func (c *Client) RecordSearch(ctx context.Context, userID int64, keyword string) error {
	return c.do(ctx, request{
		op:     "record search history",
		method: http.MethodPost,
		path:   fmt.Sprintf(pathSearchHistory, userID),
		query:  url.Values{"keyword": {keyword}},
	}, nil)
}

// FindUser resolves a user by id through the member lookup endpoint
func (c *Client) FindUser(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, request{
		op:     "find user",
		method: http.MethodPost,
		path:   pathUserInfo,
		query:  url.Values{"userId": {userID}},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
