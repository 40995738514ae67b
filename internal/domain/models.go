package domain

import "time"

// Book is a catalog record owned by the remote catalog service
type Book struct {
	ID           int64  `json:"bookId"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Publisher    string `json:"publisher"`
	Price        int64  `json:"price"`
	Genre        Genre  `json:"genre"`
	ImageURL     string `json:"imageUrl"`
	CommentCount int    `json:"commentCount"`
}

// LineItem is a (book, quantity) pair held in a cart or order
type LineItem struct {
	BookID   int64 `json:"bookId"`
	Quantity int   `json:"quantity"`
}

// CartItem is a cart line as returned by the cart API, with the book inlined
type CartItem struct {
	Book     Book `json:"book"`
	Quantity int  `json:"quantity"`
}

// Coupon is a one-shot discount issued to a user. At most one of
// DiscountAmount and DiscountPercent is positive.
type Coupon struct {
	Code            string    `json:"code"`
	DiscountAmount  int64     `json:"discountAmount"`
	DiscountPercent int       `json:"discountPercent"`
	MinOrderAmount  int64     `json:"minOrderAmount"`
	ExpiryDate      Timestamp `json:"expiryDate"`
	Used            bool      `json:"used"`
	UsedInOrderID   *int64    `json:"usedInOrderId,omitempty"`
}

// User is the signed-in customer as returned by the member lookup
type User struct {
	ID          int64  `json:"id"`
	LoginID     string `json:"userId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	CardNumber  string `json:"cardNumber"`
	CardType    string `json:"cardType"`
	BankAccount string `json:"bankAccount"`
}

// OrderItem is a line of a placed order
type OrderItem struct {
	BookTitle string `json:"bookTitle"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// Order is a placed order. TotalPrice is what the server recomputed and is
// the only authoritative amount.
type Order struct {
	ID               int64       `json:"id"`
	OrderDate        Timestamp   `json:"orderDate"`
	Status           OrderStatus `json:"status"`
	TotalPrice       int64       `json:"totalPrice"`
	DiscountedAmount int64       `json:"discountedAmount"`
	Address          string      `json:"address"`
	CouponCode       *string     `json:"couponCode,omitempty"`
	Items            []OrderItem `json:"orderItems"`
}

// Delivery is the shipping state of an order
type Delivery struct {
	Status         string `json:"deliveryStatus"`
	TrackingNumber string `json:"trackingNumber"`
}

// CommentAuthor is the part of the commenting user that is safe to show
// other readers. The remote API inlines the whole member record.
type CommentAuthor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Comment is a reader review left on a book. Book is only inlined when
// comments are listed per user.
type Comment struct {
	ID      int64         `json:"commentId"`
	Content string        `json:"content"`
	User    CommentAuthor `json:"user"`
	Book    *Book         `json:"book,omitempty"`
}

// CheckoutEvent is an audit record of a checkout step
type CheckoutEvent struct {
	ID        string                 `json:"id"`
	UserID    int64                  `json:"userId"`
	OrderID   *int64                 `json:"orderId,omitempty"`
	EventType EventType              `json:"eventType"`
	EventData map[string]interface{} `json:"eventData"` // JSONB
	CreatedAt time.Time              `json:"createdAt"`
}
