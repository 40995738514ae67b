package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/swims/storefront/internal/domain"
)

var (
	ErrEmptyCart       = errors.New("cart has no items")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrCouponNotFound  = errors.New("coupon is not issued to this user")
)

// Line is a book with the quantity being bought
type Line struct {
	Book     domain.Book
	Quantity int
}

// Total is price * quantity for the line
func (l Line) Total() int64 {
	return l.Book.Price * int64(l.Quantity)
}

// ValidateQuantity rejects quantities below 1. Quantities are never clamped.
func ValidateQuantity(q int) error {
	if q < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, q)
	}
	return nil
}

// Subtotal sums price * quantity over the lines
func Subtotal(lines []Line) (int64, error) {
	var subtotal int64
	for _, l := range lines {
		if err := ValidateQuantity(l.Quantity); err != nil {
			return 0, fmt.Errorf("book %d: %w", l.Book.ID, err)
		}
		if l.Book.Price < 0 {
			return 0, fmt.Errorf("book %d: %w", l.Book.ID, ErrInvalidPrice)
		}
		subtotal += l.Total()
	}
	return subtotal, nil
}

// Quote is the priced view of a cart with at most one coupon applied
type Quote struct {
	Lines    []Line
	Subtotal int64
	Discount int64
	Total    int64
	// Coupon is the applied coupon, nil when none was selected or it was rejected
	Coupon *domain.Coupon
	// Eligible lists every coupon the caller may select for this subtotal
	Eligible []domain.Coupon
}

// Price computes the quote for lines with the coupon named by selectedCode
// applied. An empty code means no coupon. The engine never picks a coupon on
// its own.
//
// If the selected coupon cannot be applied, the returned error wraps one of
// the coupon errors and the quote is still returned without the discount so
// the caller can show the undiscounted total.
func Price(lines []Line, coupons []domain.Coupon, selectedCode string, now time.Time) (*Quote, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal, err := Subtotal(lines)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		Lines:    lines,
		Subtotal: subtotal,
		Total:    subtotal,
		Eligible: EligibleCoupons(coupons, subtotal, now),
	}

	if selectedCode == "" {
		return quote, nil
	}

	coupon, ok := findCoupon(coupons, selectedCode)
	if !ok {
		return quote, fmt.Errorf("coupon %s: %w", selectedCode, ErrCouponNotFound)
	}

	discount, err := Apply(coupon, subtotal, now)
	if err != nil {
		return quote, fmt.Errorf("coupon %s: %w", selectedCode, err)
	}

	quote.Coupon = &coupon
	quote.Discount = discount
	quote.Total = floor(subtotal - discount)
	return quote, nil
}

func findCoupon(coupons []domain.Coupon, code string) (domain.Coupon, bool) {
	for _, c := range coupons {
		if c.Code == code {
			return c, true
		}
	}
	return domain.Coupon{}, false
}

func floor(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
