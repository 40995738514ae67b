package commerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/swims/storefront/internal/domain"
)

// GetCart fetches the user's cart
func (c *Client) GetCart(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	var result struct {
		Items []domain.CartItem `json:"items"`
	}
	err := c.do(ctx, request{
		op:     "get cart",
		method: http.MethodGet,
		path:   fmt.Sprintf(pathCart, userID),
	}, &result)
	if err != nil {
		return nil, err
	}
	if result.Items == nil {
		return []domain.CartItem{}, nil
	}
	return result.Items, nil
}

// AddToCart adds a book to the user's cart
func (c *Client) AddToCart(ctx context.Context, userID int64, item domain.LineItem) error {
	return c.do(ctx, request{
		op:     "add to cart",
		method: http.MethodPost,
		path:   pathCartAdd,
		query: url.Values{
			"userId":   {idString(userID)},
			"bookId":   {idString(item.BookID)},
			"quantity": {fmt.Sprintf("%d", item.Quantity)},
		},
	}, nil)
}

// UpdateCartQuantity sets the quantity of a cart line
func (c *Client) UpdateCartQuantity(ctx context.Context, userID int64, item domain.LineItem) error {
	return c.do(ctx, request{
		op:     "update cart quantity",
		method: http.MethodPut,
		path:   fmt.Sprintf(pathCartUpdate, item.BookID),
		query: url.Values{
			"userId":   {idString(userID)},
			"quantity": {fmt.Sprintf("%d", item.Quantity)},
		},
	}, nil)
}

// RemoveFromCart deletes a cart line
func (c *Client) RemoveFromCart(ctx context.Context, userID, bookID int64) error {
	return c.do(ctx, request{
		op:     "remove from cart",
		method: http.MethodDelete,
		path:   fmt.Sprintf(pathCartRemove, bookID),
		query:  url.Values{"userId": {idString(userID)}},
	}, nil)
}
