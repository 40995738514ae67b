package commerce

import (
	"context"
	"fmt"
	"net/http"

	"github.com/swims/storefront/internal/domain"
)

// CreateCouponInput is the coupon issuance payload
type CreateCouponInput struct {
	UserID          int64  `json:"userId"`
	Code            string `json:"code"`
	DiscountAmount  int64  `json:"discountAmount"`
	DiscountPercent int    `json:"discountPercent"`
	MinOrderAmount  int64  `json:"minOrderAmount"`
	ExpiryDate      string `json:"expiryDate"` // domain.RemoteDateTimeLayout
}

// ListCoupons fetches every coupon issued to a user, used or not
func (c *Client) ListCoupons(ctx context.Context, userID int64) ([]domain.Coupon, error) {
	var coupons []domain.Coupon
	err := c.do(ctx, request{
		op:     "list coupons",
		method: http.MethodGet,
		path:   fmt.Sprintf(pathUserCoupons, userID),
	}, &coupons)
	if err != nil {
		return nil, err
	}
	return coupons, nil
}

// CreateCoupon issues a coupon
func (c *Client) CreateCoupon(ctx context.Context, input CreateCouponInput) error {
	return c.do(ctx, request{
		op:     "create coupon",
		method: http.MethodPost,
		path:   pathCouponCreate,
		body:   input,
	}, nil)
}
