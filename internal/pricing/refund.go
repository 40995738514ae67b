package pricing

import "github.com/swims/storefront/internal/domain"

// RefundEligibility decides whether an order may be refunded. Refunded orders
// and orders paid with a coupon are never refundable.
func RefundEligibility(order domain.Order, coupons []domain.Coupon) (domain.RefundStatus, domain.RefundBlock) {
	if order.Status.IsRefunded() {
		return domain.RefundUnavailable, domain.RefundBlockAlreadyRefunded
	}
	for _, c := range coupons {
		if c.UsedInOrderID != nil && *c.UsedInOrderID == order.ID {
			return domain.RefundUnavailable, domain.RefundBlockCouponApplied
		}
	}
	return domain.RefundAvailable, domain.RefundBlockNone
}
