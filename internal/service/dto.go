package service

import "github.com/swims/storefront/internal/domain"

// SearchParams are the raw catalog search inputs
type SearchParams struct {
	Query       string   `form:"query"`
	Scope       string   `form:"scope"`
	RefineScope string   `form:"refine_scope"`
	Refine      string   `form:"refine"`
	Genres      []string `form:"genre"`
	Sort        string   `form:"sort"`
	Order       string   `form:"order"`
}

// BookView is a book with its rating; Rating is nil when no rating exists
type BookView struct {
	domain.Book
	Rating *float64 `json:"rating"`
}

// BookDetail is the book page: the book, its average rating and its reviews
type BookDetail struct {
	BookView
	Comments []domain.Comment `json:"comments"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type InterestRequest struct {
	Genre string `json:"genre" binding:"required"`
}

type RatingRequest struct {
	Score int `json:"score" binding:"required"`
}

type LineItemRequest struct {
	BookID   int64 `json:"book_id" binding:"required"`
	Quantity int   `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type RemoveCartItemsRequest struct {
	BookIDs []int64 `json:"book_ids" binding:"required,min=1"`
}

// CartView is the cart with its undiscounted subtotal over the valid lines
type CartView struct {
	Items          []domain.CartItem `json:"items"`
	Subtotal       int64             `json:"subtotal"`
	InvalidBookIDs []int64           `json:"invalid_book_ids,omitempty"`
}

// CouponView is a coupon as listed on the checkout form
type CouponView struct {
	domain.Coupon
	Label string `json:"label"`
	// Selectable ignores the order amount; Eligible also checks it
	Selectable bool `json:"selectable"`
	Eligible   bool `json:"eligible"`
}

type IssueCouponRequest struct {
	UserID          int64  `json:"user_id" binding:"required"`
	Code            string `json:"code" binding:"required"`
	DiscountAmount  int64  `json:"discount_amount"`
	DiscountPercent int    `json:"discount_percent"`
	MinOrderAmount  int64  `json:"min_order_amount"`
	ExpiryDate      string `json:"expiry_date" binding:"required"` // YYYY-MM-DD
}

type QuoteRequest struct {
	Items      []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	CouponCode string            `json:"coupon_code"`
}

type QuoteLine struct {
	BookID   int64  `json:"book_id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Total    int64  `json:"total"`
}

type QuoteView struct {
	Items                []QuoteLine          `json:"items"`
	Subtotal             int64                `json:"subtotal"`
	Discount             int64                `json:"discount"`
	Total                int64                `json:"total"`
	AppliedCoupon        *domain.Coupon       `json:"applied_coupon"`
	EligibleCoupons      []CouponView         `json:"eligible_coupons"`
	PaymentMethod        domain.PaymentMethod `json:"payment_method"`
	PaymentInfo          string               `json:"payment_info"`
	ExpectedDeliveryDate string               `json:"expected_delivery_date"`
}

type CheckoutRequest struct {
	Items         []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	CouponCode    string            `json:"coupon_code"`
	Receiver      string            `json:"receiver" binding:"required"`
	Address       string            `json:"address" binding:"required"`
	PaymentMethod string            `json:"payment_method"`
	// ExpectedTotal is the total the client showed; advisory only
	ExpectedTotal *int64 `json:"expected_total"`
}

type CheckoutStatus string

const (
	CheckoutPaid          CheckoutStatus = "paid"
	CheckoutPaymentFailed CheckoutStatus = "payment_failed"
)

type CheckoutResult struct {
	OrderID       int64                `json:"order_id"`
	Status        CheckoutStatus       `json:"status"`
	Subtotal      int64                `json:"subtotal"`
	Discount      int64                `json:"discount"`
	Total         int64                `json:"total"`
	CouponCode    *string              `json:"coupon_code,omitempty"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Failure       string               `json:"failure,omitempty"`
	Replayed      bool                 `json:"replayed"`
}

// OrderView is an order as shown on the order history page
type OrderView struct {
	domain.Order
	DeliveryStatus string              `json:"delivery_status"`
	TrackingNumber string              `json:"tracking_number"`
	RefundStatus   domain.RefundStatus `json:"refund_status"`
	RefundBlock    domain.RefundBlock  `json:"refund_block,omitempty"`
}
