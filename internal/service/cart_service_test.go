package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/domain"
	apperrors "github.com/swims/storefront/pkg/errors"
)

func TestCartService_Get(t *testing.T) {
	fc := &fakeCommerce{cart: []domain.CartItem{
		{Book: bookA, Quantity: 2},
		{Book: bookB, Quantity: 1},
	}}
	s := NewCartService(fc, zap.NewNop())

	view, err := s.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, int64(25000), view.Subtotal)
}

func TestCartService_GetFlagsInvalidLines(t *testing.T) {
	bad := domain.Book{ID: 9, Title: "Broken", Price: 5000}
	fc := &fakeCommerce{cart: []domain.CartItem{
		{Book: bookA, Quantity: 2},
		{Book: bad, Quantity: 0},
		{Book: bookB, Quantity: 1},
	}}
	s := NewCartService(fc, zap.NewNop())

	view, err := s.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, view.Items, 3, "the invalid line is still listed")
	assert.Equal(t, int64(25000), view.Subtotal, "valid lines are still summed")
	assert.Equal(t, []int64{9}, view.InvalidBookIDs)
}

func TestCartService_QuantityIsNeverClamped(t *testing.T) {
	fc := &fakeCommerce{}
	s := NewCartService(fc, zap.NewNop())

	for _, q := range []int{0, -1} {
		err := s.UpdateQuantity(context.Background(), 7, 1, q)
		var verr *apperrors.ErrValidation
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "quantity", verr.Field)

		err = s.Add(context.Background(), 7, LineItemRequest{BookID: 1, Quantity: q})
		require.ErrorAs(t, err, &verr)
	}
	assert.Empty(t, fc.updated)
	assert.Empty(t, fc.added)

	require.NoError(t, s.UpdateQuantity(context.Background(), 7, 1, 3))
	assert.Equal(t, []domain.LineItem{{BookID: 1, Quantity: 3}}, fc.updated)
}

func TestCartService_Remove(t *testing.T) {
	fc := &fakeCommerce{}
	s := NewCartService(fc, zap.NewNop())

	require.NoError(t, s.Remove(context.Background(), 7, []int64{1, 2, 3}))
	assert.ElementsMatch(t, []int64{1, 2, 3}, fc.removed)

	var verr *apperrors.ErrValidation
	require.ErrorAs(t, s.Remove(context.Background(), 7, nil), &verr)
}

func TestCartService_RemovePartialFailure(t *testing.T) {
	fc := &fakeCommerce{removeErr: map[int64]error{2: errors.New("not in cart")}}
	s := NewCartService(fc, zap.NewNop())

	err := s.Remove(context.Background(), 7, []int64{1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remove book 2")
	assert.ElementsMatch(t, []int64{1, 2, 3}, fc.removed, "other removals still run")
}
