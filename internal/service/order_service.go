package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/swims/storefront/internal/domain"
	"github.com/swims/storefront/internal/events"
	"github.com/swims/storefront/internal/pricing"
	"github.com/swims/storefront/internal/repository"
	apperrors "github.com/swims/storefront/pkg/errors"
)

const deliveryLookupConcurrency = 8

type orderService struct {
	orders  OrderAPI
	coupons CouponAPI
	audit   *auditor
	logger  *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orders OrderAPI, coupons CouponAPI, repos *repository.Repositories, publisher events.Publisher, logger *zap.Logger) *orderService {
	a := &auditor{publisher: publisher, logger: logger}
	if repos != nil {
		a.repo = repos.CheckoutEvent
	}
	return &orderService{
		orders:  orders,
		coupons: coupons,
		audit:   a,
		logger:  logger,
	}
}

// History lists the user's orders with delivery and refund status. Delivery
// lookups run concurrently and one failing lookup only degrades its own order.
func (s *orderService) History(ctx context.Context, userID int64) ([]OrderView, error) {
	orders, err := s.orders.ListOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	coupons, err := s.coupons.ListCoupons(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, len(orders))

	var g errgroup.Group
	g.SetLimit(deliveryLookupConcurrency)
	for i, o := range orders {
		i, o := i, o
		g.Go(func() error {
			delivery, err := s.orders.GetDelivery(ctx, o.ID)
			if err != nil {
				s.logger.Warn("Failed to get delivery",
					zap.Int64("order_id", o.ID),
					zap.Error(err),
				)
			}
			views[i] = orderView(o, delivery, err, coupons)
			return nil
		})
	}
	_ = g.Wait()

	return views, nil
}

func orderView(o domain.Order, d *domain.Delivery, lookupErr error, coupons []domain.Coupon) OrderView {
	v := OrderView{Order: o}

	if lookupErr != nil || d == nil {
		v.DeliveryStatus = domain.DeliveryStatusUnknown
		v.TrackingNumber = domain.TrackingNumberNotLoaded
		v.RefundStatus = domain.RefundUnavailable
		v.RefundBlock = domain.RefundBlockDeliveryUnknown
		return v
	}

	v.DeliveryStatus = d.Status
	if v.DeliveryStatus == "" {
		v.DeliveryStatus = domain.DeliveryStatusUnknown
	}
	if o.Status.IsRefunded() {
		v.DeliveryStatus = domain.DeliveryStatusRefunded
	}
	v.TrackingNumber = d.TrackingNumber
	if v.TrackingNumber == "" {
		v.TrackingNumber = domain.TrackingNumberUnknown
	}

	v.RefundStatus, v.RefundBlock = pricing.RefundEligibility(o, coupons)
	return v
}

// Refund refunds an order if it is refundable
func (s *orderService) Refund(ctx context.Context, userID, orderID int64) error {
	orders, err := s.orders.ListOrders(ctx, userID)
	if err != nil {
		return err
	}

	var order *domain.Order
	for i := range orders {
		if orders[i].ID == orderID {
			order = &orders[i]
			break
		}
	}
	if order == nil {
		return &apperrors.ErrNotFound{Resource: "order", ID: strconv.FormatInt(orderID, 10)}
	}

	coupons, err := s.coupons.ListCoupons(ctx, userID)
	if err != nil {
		return err
	}

	if status, block := pricing.RefundEligibility(*order, coupons); status != domain.RefundAvailable {
		return &apperrors.ErrNotRefundable{OrderID: orderID, Reason: block}
	}

	if err := s.orders.ProcessRefund(ctx, orderID, userID); err != nil {
		s.logger.Error("Refund failed",
			zap.Int64("order_id", orderID),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return err
	}

	s.audit.record(ctx, userID, &orderID, domain.EventRefundRequested, map[string]interface{}{
		"total": order.TotalPrice,
	})
	s.logger.Info("Order refunded",
		zap.Int64("order_id", orderID),
		zap.Int64("user_id", userID),
	)
	return nil
}
