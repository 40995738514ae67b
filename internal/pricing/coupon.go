package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/swims/storefront/internal/domain"
)

var (
	ErrConflictingDiscount = errors.New("coupon cannot carry both a flat and a percent discount")
	ErrNoDiscount          = errors.New("coupon carries no discount")
	ErrInvalidPercent      = errors.New("discount percent must be between 0 and 100")
	ErrNegativeAmount      = errors.New("coupon amounts must not be negative")
	ErrCouponUsed          = errors.New("coupon has already been used")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrMinOrderNotMet      = errors.New("order amount is below the coupon minimum")
)

// ValidateCoupon checks the coupon's own fields: non-negative amounts, a
// percent of at most 100 and no more than one of the two discounts.
func ValidateCoupon(c domain.Coupon) error {
	if c.DiscountAmount < 0 || c.MinOrderAmount < 0 {
		return ErrNegativeAmount
	}
	if c.DiscountPercent < 0 || c.DiscountPercent > 100 {
		return ErrInvalidPercent
	}
	if c.DiscountAmount > 0 && c.DiscountPercent > 0 {
		return ErrConflictingDiscount
	}
	return nil
}

// Selectable reports whether the coupon is unused and expires strictly after now
func Selectable(c domain.Coupon, now time.Time) bool {
	return usable(c, now) == nil
}

func usable(c domain.Coupon, now time.Time) error {
	if c.Used {
		return ErrCouponUsed
	}
	if !c.ExpiryDate.After(now) {
		return ErrCouponExpired
	}
	return nil
}

// Eligible reports whether the coupon can be applied to subtotal at now
func Eligible(c domain.Coupon, subtotal int64, now time.Time) bool {
	_, err := Apply(c, subtotal, now)
	return err == nil
}

// EligibleCoupons returns the coupons that can be applied to subtotal, in
// their original order
func EligibleCoupons(coupons []domain.Coupon, subtotal int64, now time.Time) []domain.Coupon {
	eligible := make([]domain.Coupon, 0, len(coupons))
	for _, c := range coupons {
		if Eligible(c, subtotal, now) {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

// Apply re-validates the coupon against subtotal and returns the discount.
// The discount never exceeds subtotal.
func Apply(c domain.Coupon, subtotal int64, now time.Time) (int64, error) {
	if err := ValidateCoupon(c); err != nil {
		return 0, err
	}
	if err := usable(c, now); err != nil {
		return 0, err
	}
	if subtotal < c.MinOrderAmount {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrMinOrderNotMet, c.MinOrderAmount, subtotal)
	}
	return Discount(c, subtotal), nil
}

// Discount is the amount the coupon takes off subtotal, capped at subtotal.
// It does not check eligibility.
func Discount(c domain.Coupon, subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}
	var d int64
	switch {
	case c.DiscountAmount > 0:
		d = c.DiscountAmount
	case c.DiscountPercent > 0:
		d = PercentOf(subtotal, c.DiscountPercent)
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}

// PercentOf returns round(amount * percent / 100), rounding halves up
func PercentOf(amount int64, percent int) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(int64(percent))).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// Describe renders the coupon's discount the way the checkout form lists it
func Describe(c domain.Coupon) string {
	if c.DiscountPercent > 0 {
		return fmt.Sprintf("%s - %d%% 할인", c.Code, c.DiscountPercent)
	}
	return fmt.Sprintf("%s - %d원 할인", c.Code, c.DiscountAmount)
}

// FirstEligible returns the first eligible coupon, used by flows that
// preselect a coupon for the user
func FirstEligible(coupons []domain.Coupon, subtotal int64, now time.Time) (domain.Coupon, bool) {
	eligible := EligibleCoupons(coupons, subtotal, now)
	if len(eligible) == 0 {
		return domain.Coupon{}, false
	}
	return eligible[0], true
}

// ValidateIssue checks a coupon about to be issued: a code, exactly one
// positive discount and an expiry date are required
func ValidateIssue(c domain.Coupon) error {
	if c.Code == "" {
		return errors.New("coupon code is required")
	}
	if err := ValidateCoupon(c); err != nil {
		return err
	}
	if c.DiscountAmount == 0 && c.DiscountPercent == 0 {
		return ErrNoDiscount
	}
	if c.ExpiryDate.IsZero() {
		return errors.New("expiry date is required")
	}
	return nil
}
