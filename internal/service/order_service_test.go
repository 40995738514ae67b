package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/domain"
	"github.com/swims/storefront/internal/repository"
	apperrors "github.com/swims/storefront/pkg/errors"
)

func newTestOrders(fc *fakeCommerce, ev *fakeEvents) *orderService {
	return NewOrderService(fc, fc, &repository.Repositories{CheckoutEvent: ev}, ev, zap.NewNop())
}

func TestOrderHistory(t *testing.T) {
	fc := &fakeCommerce{
		orders: []domain.Order{
			{ID: 1, Status: "배송 중", TotalPrice: 20000},
			{ID: 2, Status: domain.OrderStatusRefunded, TotalPrice: 10000},
			{ID: 3, Status: "배송 완료", TotalPrice: 18000},
			{ID: 4, Status: "결제 완료", TotalPrice: 5000},
		},
		coupons: []domain.Coupon{{Code: "P10", Used: true, UsedInOrderID: int64Ptr(3)}},
		delivery: map[int64]*domain.Delivery{
			1: {Status: "배송 중", TrackingNumber: "TRK-1"},
			2: {Status: "배송 완료", TrackingNumber: "TRK-2"},
			3: {Status: "배송 완료"},
		},
		deliveryErr: map[int64]error{4: errors.New("delivery service down")},
	}
	s := newTestOrders(fc, &fakeEvents{})

	views, err := s.History(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, views, 4)

	assert.Equal(t, int64(1), views[0].ID, "order is preserved")
	assert.Equal(t, "배송 중", views[0].DeliveryStatus)
	assert.Equal(t, "TRK-1", views[0].TrackingNumber)
	assert.Equal(t, domain.RefundAvailable, views[0].RefundStatus)

	assert.Equal(t, domain.DeliveryStatusRefunded, views[1].DeliveryStatus)
	assert.Equal(t, domain.RefundUnavailable, views[1].RefundStatus)
	assert.Equal(t, domain.RefundBlockAlreadyRefunded, views[1].RefundBlock)

	assert.Equal(t, domain.TrackingNumberUnknown, views[2].TrackingNumber)
	assert.Equal(t, domain.RefundUnavailable, views[2].RefundStatus)
	assert.Equal(t, domain.RefundBlockCouponApplied, views[2].RefundBlock)

	assert.Equal(t, domain.DeliveryStatusUnknown, views[3].DeliveryStatus)
	assert.Equal(t, domain.TrackingNumberNotLoaded, views[3].TrackingNumber)
	assert.Equal(t, domain.RefundUnavailable, views[3].RefundStatus)
}

func TestRefund(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, Status: "배송 완료", TotalPrice: 20000},
		{ID: 2, Status: domain.OrderStatusRefunded},
		{ID: 3, Status: "배송 완료"},
	}
	coupons := []domain.Coupon{{Code: "P10", Used: true, UsedInOrderID: int64Ptr(3)}}

	t.Run("refundable", func(t *testing.T) {
		fc := &fakeCommerce{orders: orders, coupons: coupons}
		ev := &fakeEvents{}
		s := newTestOrders(fc, ev)

		require.NoError(t, s.Refund(context.Background(), 7, 1))
		assert.Equal(t, []int64{1}, fc.refunds)
		assert.Equal(t, []domain.EventType{domain.EventRefundRequested}, ev.stored)
	})

	t.Run("already refunded", func(t *testing.T) {
		fc := &fakeCommerce{orders: orders, coupons: nil}
		s := newTestOrders(fc, &fakeEvents{})

		err := s.Refund(context.Background(), 7, 2)
		var nr *apperrors.ErrNotRefundable
		require.ErrorAs(t, err, &nr)
		assert.Equal(t, domain.RefundBlockAlreadyRefunded, nr.Reason)
		assert.Empty(t, fc.refunds)
	})

	t.Run("paid with coupon", func(t *testing.T) {
		fc := &fakeCommerce{orders: orders, coupons: coupons}
		s := newTestOrders(fc, &fakeEvents{})

		err := s.Refund(context.Background(), 7, 3)
		var nr *apperrors.ErrNotRefundable
		require.ErrorAs(t, err, &nr)
		assert.Equal(t, domain.RefundBlockCouponApplied, nr.Reason)
		assert.Empty(t, fc.refunds)
	})

	t.Run("unknown order", func(t *testing.T) {
		fc := &fakeCommerce{orders: orders}
		s := newTestOrders(fc, &fakeEvents{})

		var nf *apperrors.ErrNotFound
		require.ErrorAs(t, s.Refund(context.Background(), 7, 42), &nf)
	})

	t.Run("remote failure", func(t *testing.T) {
		fc := &fakeCommerce{orders: orders, refundErr: &apperrors.ErrUpstream{Operation: "process refund", StatusCode: 500}}
		ev := &fakeEvents{}
		s := newTestOrders(fc, ev)

		var up *apperrors.ErrUpstream
		require.ErrorAs(t, s.Refund(context.Background(), 7, 1), &up)
		assert.Empty(t, ev.stored)
	})
}
