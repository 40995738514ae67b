package service

import (
	"context"
	"sync"
	"time"

	"github.com/swims/storefront/internal/commerce"
	"github.com/swims/storefront/internal/domain"
)

// fakeCommerce stands in for the commerce API client
type fakeCommerce struct {
	mu sync.Mutex

	cart      []domain.CartItem
	books     []domain.Book
	coupons   []domain.Coupon
	orders    []domain.Order
	delivery  map[int64]*domain.Delivery
	comments  []domain.Comment
	interests []string
	avgRating map[int64]float64

	cartErr      error
	listBooksErr error
	createErr    error
	payErr       error
	refundErr    error
	commentsErr  error
	ratingErr    error
	removeErr    map[int64]error
	deliveryErr  map[int64]error
	createdOrder *domain.Order
	nextOrderID  int64

	getCartCalls    int
	listBooksCalls  int
	created         []commerce.CreateOrderInput
	payments        []commerce.PaymentInput
	refunds         []int64
	removed         []int64
	updated         []domain.LineItem
	added           []domain.LineItem
	issued          []commerce.CreateCouponInput
	ratings         []int
	searches        []string
	postedComments  []string
	editedComments  map[int64]string
	deletedComments []int64
	addedInterests  []string
	removedInterest []string
}

func (f *fakeCommerce) GetCart(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCartCalls++
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	return f.cart, nil
}

func (f *fakeCommerce) AddToCart(ctx context.Context, userID int64, item domain.LineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, item)
	return nil
}

func (f *fakeCommerce) UpdateCartQuantity(ctx context.Context, userID int64, item domain.LineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, item)
	return nil
}

func (f *fakeCommerce) RemoveFromCart(ctx context.Context, userID, bookID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, bookID)
	return f.removeErr[bookID]
}

func (f *fakeCommerce) ListBooks(ctx context.Context) ([]domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listBooksCalls++
	if f.listBooksErr != nil {
		return nil, f.listBooksErr
	}
	return f.books, nil
}

func (f *fakeCommerce) ListCoupons(ctx context.Context, userID int64) ([]domain.Coupon, error) {
	return f.coupons, nil
}

func (f *fakeCommerce) CreateCoupon(ctx context.Context, input commerce.CreateCouponInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued = append(f.issued, input)
	return nil
}

func (f *fakeCommerce) CreateOrder(ctx context.Context, userID int64, input commerce.CreateOrderInput) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, input)
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createdOrder != nil {
		o := *f.createdOrder
		return &o, nil
	}
	f.nextOrderID++
	return &domain.Order{ID: 100 + f.nextOrderID, TotalPrice: input.TotalPrice, CouponCode: input.CouponCode}, nil
}

func (f *fakeCommerce) ProcessPayment(ctx context.Context, input commerce.PaymentInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = append(f.payments, input)
	return f.payErr
}

func (f *fakeCommerce) ProcessRefund(ctx context.Context, orderID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refunds = append(f.refunds, orderID)
	return f.refundErr
}

func (f *fakeCommerce) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return f.orders, nil
}

func (f *fakeCommerce) GetDelivery(ctx context.Context, orderID int64) (*domain.Delivery, error) {
	if err := f.deliveryErr[orderID]; err != nil {
		return nil, err
	}
	if d, ok := f.delivery[orderID]; ok {
		return d, nil
	}
	return &domain.Delivery{}, nil
}

func (f *fakeCommerce) SubmitRating(ctx context.Context, userID, bookID int64, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratings = append(f.ratings, score)
	return nil
}

func (f *fakeCommerce) RecordSearch(ctx context.Context, userID int64, keyword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, keyword)
	return nil
}

// fakeIdem is an in-memory IdempotencyStore
type fakeIdem struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{items: make(map[string][]byte)}
}

func (f *fakeIdem) Reserve(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[key]; ok {
		return false, nil
	}
	f.items[key] = []byte("pending")
	return true, nil
}

func (f *fakeIdem) Load(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[key]
	if !ok {
		return nil, false, nil
	}
	if string(v) == "pending" {
		return nil, true, nil
	}
	return v, false, nil
}

func (f *fakeIdem) Save(ctx context.Context, key string, result []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = result
	return nil
}

func (f *fakeIdem) Release(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, key)
	return nil
}

// fakeEvents records audit events for both the repository and the publisher
type fakeEvents struct {
	mu        sync.Mutex
	stored    []domain.EventType
	published []domain.EventType
}

func (f *fakeEvents) Create(ctx context.Context, event *domain.CheckoutEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, event.EventType)
	return nil
}

func (f *fakeEvents) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.CheckoutEvent, error) {
	return nil, nil
}

func (f *fakeEvents) Publish(ctx context.Context, event domain.CheckoutEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, event.EventType)
	return nil
}

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.Local)

func ts(t time.Time) domain.Timestamp {
	return domain.Timestamp{Time: t}
}

func int64Ptr(v int64) *int64 {
	return &v
}

func (f *fakeCommerce) AverageRating(ctx context.Context, bookID int64) (float64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ratingErr != nil {
		return 0, false, f.ratingErr
	}
	r, ok := f.avgRating[bookID]
	return r, ok, nil
}

func (f *fakeCommerce) BookComments(ctx context.Context, bookID int64) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commentsErr != nil {
		return nil, f.commentsErr
	}
	return f.comments, nil
}

func (f *fakeCommerce) UserComments(ctx context.Context, userID int64) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commentsErr != nil {
		return nil, f.commentsErr
	}
	var out []domain.Comment
	for _, c := range f.comments {
		if c.User.ID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommerce) CreateComment(ctx context.Context, userID, bookID int64, content string) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postedComments = append(f.postedComments, content)
	return &domain.Comment{ID: int64(len(f.postedComments)), Content: content, User: domain.CommentAuthor{ID: userID}}, nil
}

func (f *fakeCommerce) UpdateComment(ctx context.Context, userID, commentID int64, content string) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editedComments == nil {
		f.editedComments = map[int64]string{}
	}
	f.editedComments[commentID] = content
	return &domain.Comment{ID: commentID, Content: content, User: domain.CommentAuthor{ID: userID}}, nil
}

func (f *fakeCommerce) DeleteComment(ctx context.Context, userID, commentID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedComments = append(f.deletedComments, commentID)
	return nil
}

func (f *fakeCommerce) Interests(ctx context.Context, userID int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interests, nil
}

func (f *fakeCommerce) AddInterest(ctx context.Context, userID int64, genre string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addedInterests = append(f.addedInterests, genre)
	return nil
}

func (f *fakeCommerce) RemoveInterest(ctx context.Context, userID int64, genre string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removedInterest = append(f.removedInterest, genre)
	return nil
}
