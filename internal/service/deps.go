package service

import (
	"context"

	"github.com/swims/storefront/internal/commerce"
	"github.com/swims/storefront/internal/domain"
)

// The commerce client satisfies every interface below. Services only ask for
// the calls they make so tests can fake them.

type CartAPI interface {
	GetCart(ctx context.Context, userID int64) ([]domain.CartItem, error)
	AddToCart(ctx context.Context, userID int64, item domain.LineItem) error
	UpdateCartQuantity(ctx context.Context, userID int64, item domain.LineItem) error
	RemoveFromCart(ctx context.Context, userID, bookID int64) error
}

type BookAPI interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
}

type CouponAPI interface {
	ListCoupons(ctx context.Context, userID int64) ([]domain.Coupon, error)
	CreateCoupon(ctx context.Context, input commerce.CreateCouponInput) error
}

type OrderAPI interface {
	CreateOrder(ctx context.Context, userID int64, input commerce.CreateOrderInput) (*domain.Order, error)
	ProcessPayment(ctx context.Context, input commerce.PaymentInput) error
	ProcessRefund(ctx context.Context, orderID, userID int64) error
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	GetDelivery(ctx context.Context, orderID int64) (*domain.Delivery, error)
}

type RatingAPI interface {
	SubmitRating(ctx context.Context, userID, bookID int64, score int) error
}

type BookDetailAPI interface {
	BookAPI
	AverageRating(ctx context.Context, bookID int64) (avg float64, ok bool, err error)
}

type CommentAPI interface {
	BookComments(ctx context.Context, bookID int64) ([]domain.Comment, error)
	UserComments(ctx context.Context, userID int64) ([]domain.Comment, error)
	CreateComment(ctx context.Context, userID, bookID int64, content string) (*domain.Comment, error)
	UpdateComment(ctx context.Context, userID, commentID int64, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID int64) error
}

type InterestAPI interface {
	Interests(ctx context.Context, userID int64) ([]string, error)
	AddInterest(ctx context.Context, userID int64, genre string) error
	RemoveInterest(ctx context.Context, userID int64, genre string) error
}

type SearchHistoryAPI interface {
	RecordSearch(ctx context.Context, userID int64, keyword string) error
}

// IdempotencyStore is implemented by redisx.IdempotencyStore
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Load(ctx context.Context, key string) (result []byte, pending bool, err error)
	Save(ctx context.Context, key string, result []byte) error
	Release(ctx context.Context, key string) error
}
