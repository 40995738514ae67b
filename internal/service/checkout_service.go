package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/swims/storefront/internal/commerce"
	"github.com/swims/storefront/internal/domain"
	"github.com/swims/storefront/internal/events"
	"github.com/swims/storefront/internal/pricing"
	"github.com/swims/storefront/internal/redisx"
	"github.com/swims/storefront/internal/repository"
	apperrors "github.com/swims/storefront/pkg/errors"
)

// ErrCheckoutInProgress is returned when a checkout with the same
// idempotency key is still running
var ErrCheckoutInProgress = &apperrors.ErrConflict{Message: "a checkout with this idempotency key is in progress"}

type checkoutService struct {
	cart    CartAPI
	books   BookAPI
	coupons CouponAPI
	orders  OrderAPI
	idem    IdempotencyStore
	audit   *auditor
	now     func() time.Time
	intn    func(n int) int
	logger  *zap.Logger
}

// NewCheckoutService creates a new checkout service. idem may be nil, in
// which case Idempotency-Key headers are ignored.
func NewCheckoutService(
	cart CartAPI,
	books BookAPI,
	coupons CouponAPI,
	orders OrderAPI,
	idem IdempotencyStore,
	repos *repository.Repositories,
	publisher events.Publisher,
	logger *zap.Logger,
) *checkoutService {
	a := &auditor{publisher: publisher, logger: logger}
	if repos != nil {
		a.repo = repos.CheckoutEvent
	}
	return &checkoutService{
		cart:    cart,
		books:   books,
		coupons: coupons,
		orders:  orders,
		idem:    idem,
		audit:   a,
		now:     time.Now,
		intn:    rand.Intn,
		logger:  logger,
	}
}

// Quote prices the items with the selected coupon. When the coupon cannot be
// applied the undiscounted quote is returned together with a validation error.
func (s *checkoutService) Quote(ctx context.Context, user *domain.User, req QuoteRequest) (*QuoteView, error) {
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	lines, err := s.resolveLines(ctx, user.ID, req.Items)
	if err != nil {
		return nil, err
	}
	coupons, err := s.coupons.ListCoupons(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	quote, perr := pricing.Price(lines, coupons, req.CouponCode, now)
	if quote == nil {
		return nil, priceError(perr)
	}

	method, info := domain.DefaultPayment(*user)
	view := &QuoteView{
		Items:                quoteLines(quote.Lines),
		Subtotal:             quote.Subtotal,
		Discount:             quote.Discount,
		Total:                quote.Total,
		AppliedCoupon:        quote.Coupon,
		EligibleCoupons:      couponViews(quote.Eligible, quote.Subtotal, now),
		PaymentMethod:        method,
		PaymentInfo:          info,
		ExpectedDeliveryDate: ExpectedDeliveryDate(now, s.intn).Format(DeliveryDateLayout),
	}
	if perr != nil {
		return view, priceError(perr)
	}
	return view, nil
}

// Checkout creates the order and pays for it.
//
// Input is validated and priced before anything is sent. The total computed
// by the commerce API on order creation is authoritative. A payment failure
// after the order exists is reported as a CheckoutPaymentFailed result, not
// as an error, so the caller learns the order id.
func (s *checkoutService) Checkout(ctx context.Context, user *domain.User, idempotencyKey string, req CheckoutRequest) (*CheckoutResult, error) {
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, &apperrors.ErrValidation{Field: "address", Message: "address is required"}
	}
	method := domain.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method, _ = domain.DefaultPayment(*user)
	}
	if !method.IsValid() {
		return nil, &apperrors.ErrValidation{Field: "payment_method", Message: fmt.Sprintf("unsupported payment method %q", method)}
	}

	lines, err := s.resolveLines(ctx, user.ID, req.Items)
	if err != nil {
		return nil, err
	}
	var coupons []domain.Coupon
	if req.CouponCode != "" {
		if coupons, err = s.coupons.ListCoupons(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	quote, err := pricing.Price(lines, coupons, req.CouponCode, s.now())
	if err != nil {
		return nil, priceError(err)
	}

	key := ""
	if s.idem != nil && idempotencyKey != "" {
		key = redisx.CheckoutKey(user.ID, idempotencyKey)
		if res, err := s.claim(ctx, key); res != nil || err != nil {
			return res, err
		}
	}

	var couponCode *string
	if quote.Coupon != nil {
		code := quote.Coupon.Code
		couponCode = &code
	}

	order, err := s.orders.CreateOrder(ctx, user.ID, commerce.CreateOrderInput{
		TotalPrice: quote.Total,
		CouponCode: couponCode,
		Items:      lineItems(req.Items),
		Address:    address,
	})
	if err != nil {
		s.release(key)
		s.logger.Error("Failed to create order",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return nil, err
	}

	if order.TotalPrice != quote.Total {
		s.logger.Warn("Order total differs from quote",
			zap.Int64("order_id", order.ID),
			zap.Int64("quoted_total", quote.Total),
			zap.Int64("server_total", order.TotalPrice),
		)
	}
	if req.ExpectedTotal != nil && *req.ExpectedTotal != order.TotalPrice {
		s.logger.Warn("Client total differs from server total",
			zap.Int64("order_id", order.ID),
			zap.Int64("client_total", *req.ExpectedTotal),
			zap.Int64("server_total", order.TotalPrice),
		)
	}

	orderID := order.ID
	s.audit.record(ctx, user.ID, &orderID, domain.EventOrderSubmitted, map[string]interface{}{
		"total":       order.TotalPrice,
		"coupon_code": req.CouponCode,
		"items":       len(req.Items),
	})

	result := &CheckoutResult{
		OrderID:       order.ID,
		Status:        CheckoutPaid,
		Subtotal:      quote.Subtotal,
		Discount:      quote.Subtotal - order.TotalPrice,
		Total:         order.TotalPrice,
		CouponCode:    couponCode,
		PaymentMethod: method,
	}
	if result.Discount < 0 {
		result.Discount = 0
	}

	err = s.orders.ProcessPayment(ctx, commerce.PaymentInput{
		OrderID:    order.ID,
		UserID:     user.ID,
		Method:     method,
		CouponCode: couponCode,
	})
	if err != nil {
		s.logger.Error("Payment failed",
			zap.Int64("order_id", order.ID),
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		result.Status = CheckoutPaymentFailed
		result.Failure = failureReason(err)
		s.audit.record(ctx, user.ID, &orderID, domain.EventPaymentFailed, map[string]interface{}{
			"method": string(method),
			"error":  err.Error(),
		})
	} else {
		s.logger.Info("Checkout completed",
			zap.Int64("order_id", order.ID),
			zap.Int64("user_id", user.ID),
			zap.Int64("total", order.TotalPrice),
		)
		s.audit.record(ctx, user.ID, &orderID, domain.EventPaymentCompleted, map[string]interface{}{
			"method": string(method),
			"total":  order.TotalPrice,
		})
	}

	s.remember(ctx, key, result)
	return result, nil
}

// claim returns the stored result for a replayed key, or reserves the key.
// Redis being unavailable disables idempotency for the request instead of
// failing the checkout.
func (s *checkoutService) claim(ctx context.Context, key string) (*CheckoutResult, error) {
	raw, pending, err := s.idem.Load(ctx, key)
	if err != nil {
		s.logger.Warn("Idempotency lookup failed", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	if pending {
		return nil, ErrCheckoutInProgress
	}
	if raw != nil {
		var res CheckoutResult
		if err := json.Unmarshal(raw, &res); err != nil {
			s.logger.Warn("Stored checkout result is unreadable", zap.String("key", key), zap.Error(err))
			return nil, ErrCheckoutInProgress
		}
		res.Replayed = true
		return &res, nil
	}

	ok, err := s.idem.Reserve(ctx, key)
	if err != nil {
		s.logger.Warn("Idempotency reserve failed", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	if !ok {
		return nil, ErrCheckoutInProgress
	}
	return nil, nil
}

func (s *checkoutService) release(key string) {
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.idem.Release(ctx, key); err != nil {
		s.logger.Warn("Failed to release idempotency key", zap.String("key", key), zap.Error(err))
	}
}

func (s *checkoutService) remember(ctx context.Context, key string, res *CheckoutResult) {
	if key == "" {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.idem.Save(context.WithoutCancel(ctx), key, raw); err != nil {
		s.logger.Warn("Failed to save checkout result", zap.String("key", key), zap.Error(err))
	}
}

// resolveLines prices the requested items. Books are taken from the cart
// first; items bought directly from a book page fall back to the catalog.
func (s *checkoutService) resolveLines(ctx context.Context, userID int64, items []LineItemRequest) ([]pricing.Line, error) {
	known := make(map[int64]domain.Book, len(items))

	cart, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, it := range cart {
		known[it.Book.ID] = it.Book
	}

	missing := false
	for _, it := range items {
		if _, ok := known[it.BookID]; !ok {
			missing = true
			break
		}
	}
	if missing {
		all, err := s.books.ListBooks(ctx)
		if err != nil {
			return nil, err
		}
		for _, b := range all {
			if _, ok := known[b.ID]; !ok {
				known[b.ID] = b
			}
		}
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		b, ok := known[it.BookID]
		if !ok {
			return nil, &apperrors.ErrNotFound{Resource: "book", ID: fmt.Sprint(it.BookID)}
		}
		lines = append(lines, pricing.Line{Book: b, Quantity: it.Quantity})
	}
	return lines, nil
}

func validateItems(items []LineItemRequest) error {
	if len(items) == 0 {
		return &apperrors.ErrValidation{Field: "items", Message: pricing.ErrEmptyCart.Error(), Err: pricing.ErrEmptyCart}
	}
	for _, it := range items {
		if it.BookID <= 0 {
			return &apperrors.ErrValidation{Field: "items", Message: "book_id is required"}
		}
		if err := pricing.ValidateQuantity(it.Quantity); err != nil {
			return &apperrors.ErrValidation{Field: "items", Message: fmt.Sprintf("book %d: %v", it.BookID, err), Err: err}
		}
	}
	return nil
}

// priceError maps pricing failures to validation errors. A failure on a
// selected coupon names the coupon field.
func priceError(err error) error {
	field := "items"
	for _, target := range []error{
		pricing.ErrCouponNotFound, pricing.ErrCouponUsed, pricing.ErrCouponExpired,
		pricing.ErrMinOrderNotMet, pricing.ErrConflictingDiscount, pricing.ErrInvalidPercent,
		pricing.ErrNegativeAmount,
	} {
		if errors.Is(err, target) {
			field = "coupon_code"
			break
		}
	}
	return &apperrors.ErrValidation{Field: field, Message: err.Error(), Err: err}
}

func failureReason(err error) string {
	var up *apperrors.ErrUpstream
	if errors.As(err, &up) && up.Body != "" {
		return up.Body
	}
	return err.Error()
}

func lineItems(items []LineItemRequest) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.LineItem{BookID: it.BookID, Quantity: it.Quantity})
	}
	return out
}

func quoteLines(lines []pricing.Line) []QuoteLine {
	out := make([]QuoteLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, QuoteLine{
			BookID:   l.Book.ID,
			Title:    l.Book.Title,
			Price:    l.Book.Price,
			Quantity: l.Quantity,
			Total:    l.Total(),
		})
	}
	return out
}
