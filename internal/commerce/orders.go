package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/swims/storefront/internal/domain"
	apperrors "github.com/swims/storefront/pkg/errors"
)

// CreateOrderInput is the order creation payload
type CreateOrderInput struct {
	TotalPrice int64             `json:"totalPrice"`
	CouponCode *string           `json:"couponCode"`
	Items      []domain.LineItem `json:"items"`
	Address    string            `json:"address"`
}

// PaymentInput is the payment request
type PaymentInput struct {
	OrderID    int64
	UserID     int64
	Method     domain.PaymentMethod
	CouponCode *string
}

// The order endpoint sometimes serializes an empty genres list as
// `,"genres":]}`, which is not valid JSON.
var brokenGenres = regexp.MustCompile(`,\s*"genres":\s*\]}`)

// CreateOrder submits an order. The returned order carries the server
// assigned id and the server recomputed total.
func (c *Client) CreateOrder(ctx context.Context, userID int64, input CreateOrderInput) (*domain.Order, error) {
	const op = "create order"

	raw, err := c.doRaw(ctx, request{
		op:     op,
		method: http.MethodPost,
		path:   pathOrderCreate,
		query:  url.Values{"userId": {idString(userID)}},
		body:   input,
	})
	if err != nil {
		return nil, err
	}

	raw = brokenGenres.ReplaceAll(raw, []byte("}"))

	var order domain.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, &apperrors.ErrUpstream{Operation: op, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	if order.ID == 0 {
		return nil, &apperrors.ErrUpstream{Operation: op, Err: fmt.Errorf("response has no order id")}
	}
	return &order, nil
}

// ProcessPayment pays for a created order
func (c *Client) ProcessPayment(ctx context.Context, input PaymentInput) error {
	q := url.Values{
		"orderId": {idString(input.OrderID)},
		"method":  {string(input.Method)},
		"userId":  {idString(input.UserID)},
	}
	if input.CouponCode != nil {
		q.Set("couponCode", *input.CouponCode)
	}
	return c.do(ctx, request{
		op:     "process payment",
		method: http.MethodPost,
		path:   pathPay,
		query:  q,
	}, nil)
}

// ProcessRefund refunds an order
func (c *Client) ProcessRefund(ctx context.Context, orderID, userID int64) error {
	return c.do(ctx, request{
		op:     "process refund",
		method: http.MethodPost,
		path:   pathRefund,
		query: url.Values{
			"orderId": {idString(orderID)},
			"userId":  {idString(userID)},
		},
	}, nil)
}

// ListOrders fetches a user's order history
func (c *Client) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, request{
		op:     "list orders",
		method: http.MethodGet,
		path:   fmt.Sprintf(pathUserOrders, userID),
	}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetDelivery fetches the delivery state of an order
func (c *Client) GetDelivery(ctx context.Context, orderID int64) (*domain.Delivery, error) {
	var delivery domain.Delivery
	err := c.do(ctx, request{
		op:     "get delivery",
		method: http.MethodGet,
		path:   fmt.Sprintf(pathOrderDelivery, orderID),
	}, &delivery)
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}
