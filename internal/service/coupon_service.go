package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/swims/storefront/internal/commerce"
	"github.com/swims/storefront/internal/domain"
	"github.com/swims/storefront/internal/pricing"
	apperrors "github.com/swims/storefront/pkg/errors"
)

// ExpiryDateLayout is the date format accepted when issuing a coupon
const ExpiryDateLayout = "2006-01-02"

type couponService struct {
	coupons CouponAPI
	now     func() time.Time
	logger  *zap.Logger
}

// NewCouponService creates a new coupon service
func NewCouponService(coupons CouponAPI, logger *zap.Logger) *couponService {
	return &couponService{
		coupons: coupons,
		now:     time.Now,
		logger:  logger,
	}
}

// List returns every coupon issued to the user, flagged for the given subtotal
func (s *couponService) List(ctx context.Context, userID, subtotal int64) ([]CouponView, error) {
	coupons, err := s.coupons.ListCoupons(ctx, userID)
	if err != nil {
		return nil, err
	}
	return couponViews(coupons, subtotal, s.now()), nil
}

// Issue validates and creates a coupon for a user
func (s *couponService) Issue(ctx context.Context, req IssueCouponRequest) error {
	expiry, err := time.ParseInLocation(ExpiryDateLayout, req.ExpiryDate, time.Local)
	if err != nil {
		return &apperrors.ErrValidation{Field: "expiry_date", Message: "expiry date must be YYYY-MM-DD", Err: err}
	}

	coupon := domain.Coupon{
		Code:            req.Code,
		DiscountAmount:  req.DiscountAmount,
		DiscountPercent: req.DiscountPercent,
		MinOrderAmount:  req.MinOrderAmount,
		ExpiryDate:      domain.Timestamp{Time: expiry},
	}
	if err := pricing.ValidateIssue(coupon); err != nil {
		return &apperrors.ErrValidation{Field: "coupon", Message: err.Error(), Err: err}
	}

	input := commerce.CreateCouponInput{
		UserID:          req.UserID,
		Code:            req.Code,
		DiscountAmount:  req.DiscountAmount,
		DiscountPercent: req.DiscountPercent,
		MinOrderAmount:  req.MinOrderAmount,
		ExpiryDate:      expiry.Format(domain.RemoteDateTimeLayout),
	}
	if err := s.coupons.CreateCoupon(ctx, input); err != nil {
		return err
	}

	s.logger.Info("Coupon issued",
		zap.Int64("user_id", req.UserID),
		zap.String("code", req.Code),
	)
	return nil
}

func couponViews(coupons []domain.Coupon, subtotal int64, now time.Time) []CouponView {
	views := make([]CouponView, 0, len(coupons))
	for _, c := range coupons {
		views = append(views, CouponView{
			Coupon:     c,
			Label:      pricing.Describe(c),
			Selectable: pricing.Selectable(c, now),
			Eligible:   pricing.Eligible(c, subtotal, now),
		})
	}
	return views
}
