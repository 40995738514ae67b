package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/swims/storefront/internal/domain"
	"github.com/swims/storefront/internal/pricing"
	apperrors "github.com/swims/storefront/pkg/errors"
)

type cartService struct {
	cart   CartAPI
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(cart CartAPI, logger *zap.Logger) *cartService {
	return &cartService{
		cart:   cart,
		logger: logger,
	}
}

// Get returns the cart with its subtotal. A line the cart API let through
// with a bad quantity or price is left out of the subtotal and flagged in
// InvalidBookIDs so the page can point at it.
func (s *cartService) Get(ctx context.Context, userID int64) (*CartView, error) {
	items, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: items}
	for _, l := range cartLines(items) {
		total, err := pricing.Subtotal([]pricing.Line{l})
		if err != nil {
			s.logger.Warn("Cart holds an invalid line",
				zap.Int64("user_id", userID),
				zap.Int64("book_id", l.Book.ID),
				zap.Error(err),
			)
			view.InvalidBookIDs = append(view.InvalidBookIDs, l.Book.ID)
			continue
		}
		view.Subtotal += total
	}

	return view, nil
}

// Add puts a book in the cart
func (s *cartService) Add(ctx context.Context, userID int64, req LineItemRequest) error {
	if err := pricing.ValidateQuantity(req.Quantity); err != nil {
		return &apperrors.ErrValidation{Field: "quantity", Message: err.Error(), Err: err}
	}
	return s.cart.AddToCart(ctx, userID, domain.LineItem{BookID: req.BookID, Quantity: req.Quantity})
}

// UpdateQuantity changes the quantity of a cart line. Quantities below 1 are
// rejected, never clamped.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, bookID int64, quantity int) error {
	if err := pricing.ValidateQuantity(quantity); err != nil {
		return &apperrors.ErrValidation{Field: "quantity", Message: err.Error(), Err: err}
	}
	return s.cart.UpdateCartQuantity(ctx, userID, domain.LineItem{BookID: bookID, Quantity: quantity})
}

// Remove deletes the selected books from the cart. Removals run concurrently
// and the first failure is returned after all of them settle.
func (s *cartService) Remove(ctx context.Context, userID int64, bookIDs []int64) error {
	if len(bookIDs) == 0 {
		return &apperrors.ErrValidation{Field: "book_ids", Message: "no items selected"}
	}

	var g errgroup.Group
	for _, id := range bookIDs {
		id := id
		g.Go(func() error {
			if err := s.cart.RemoveFromCart(ctx, userID, id); err != nil {
				return fmt.Errorf("remove book %d: %w", id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to remove cart items",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func cartLines(items []domain.CartItem) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{Book: it.Book, Quantity: it.Quantity})
	}
	return lines
}
