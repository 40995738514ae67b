package handlers

import (
	"context"

	"github.com/swims/storefront/internal/domain"
	"github.com/swims/storefront/internal/service"
)

// Handlers depend on these rather than on the concrete services

type CatalogService interface {
	Search(ctx context.Context, session string, userID int64, p service.SearchParams) ([]service.BookView, error)
	Browse(ctx context.Context, genre string) ([]service.BookView, error)
	Suggestions(ctx context.Context, q string) ([]string, error)
	SubmitRating(ctx context.Context, userID, bookID int64, score int) error
}

type BookService interface {
	Detail(ctx context.Context, bookID int64) (*service.BookDetail, error)
	Comments(ctx context.Context, bookID int64) ([]domain.Comment, error)
	AddComment(ctx context.Context, userID, bookID int64, content string) (*domain.Comment, error)
	EditComment(ctx context.Context, userID, commentID int64, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID int64) error
}

type MemberService interface {
	Interests(ctx context.Context, userID int64) ([]string, error)
	AddInterest(ctx context.Context, userID int64, genre string) error
	RemoveInterest(ctx context.Context, userID int64, genre string) error
	Comments(ctx context.Context, userID int64) ([]domain.Comment, error)
}

type CartService interface {
	Get(ctx context.Context, userID int64) (*service.CartView, error)
	Add(ctx context.Context, userID int64, req service.LineItemRequest) error
	UpdateQuantity(ctx context.Context, userID, bookID int64, quantity int) error
	Remove(ctx context.Context, userID int64, bookIDs []int64) error
}

type CouponService interface {
	List(ctx context.Context, userID, subtotal int64) ([]service.CouponView, error)
	Issue(ctx context.Context, req service.IssueCouponRequest) error
}

type CheckoutService interface {
	Quote(ctx context.Context, user *domain.User, req service.QuoteRequest) (*service.QuoteView, error)
	Checkout(ctx context.Context, user *domain.User, idempotencyKey string, req service.CheckoutRequest) (*service.CheckoutResult, error)
}

type OrderService interface {
	History(ctx context.Context, userID int64) ([]service.OrderView, error)
	Refund(ctx context.Context, userID, orderID int64) error
}

type AuditService interface {
	ListEvents(ctx context.Context, userID int64, limit int) ([]*domain.CheckoutEvent, error)
}
