package domain

// Genre is one of the fixed catalog genres
type Genre string

const (
	GenreClassic   Genre = "고전"
	GenreFairyTale Genre = "동화"
	GenreDystopia  Genre = "디스토피아"
	GenrePostwar   Genre = "전후소설"
	GenreSatire    Genre = "풍자"
)

// Genres lists every genre in display order
var Genres = []Genre{GenreClassic, GenreFairyTale, GenreDystopia, GenrePostwar, GenreSatire}

// IsValid checks if the genre is one of the known genres
func (g Genre) IsValid() bool {
	switch g {
	case GenreClassic, GenreFairyTale, GenreDystopia, GenrePostwar, GenreSatire:
		return true
	default:
		return false
	}
}

// OrderStatus is the remote order state. The commerce API uses free-form
// labels; only the refunded label carries meaning here.
type OrderStatus string

const OrderStatusRefunded OrderStatus = "환불 완료"

// IsRefunded reports whether the order has already been refunded
func (s OrderStatus) IsRefunded() bool {
	return s == OrderStatusRefunded
}

// RefundStatus is the derived refund eligibility shown on order history
type RefundStatus string

const (
	RefundAvailable   RefundStatus = "환불 가능"
	RefundUnavailable RefundStatus = "환불 불가"
)

// RefundBlock explains why an order cannot be refunded
type RefundBlock string

const (
	RefundBlockNone            RefundBlock = ""
	RefundBlockAlreadyRefunded RefundBlock = "already refunded"
	RefundBlockCouponApplied   RefundBlock = "paid with a coupon"
	RefundBlockDeliveryUnknown RefundBlock = "delivery information unavailable"
)

// Delivery labels used when the delivery service has nothing to say
const (
	DeliveryStatusUnknown   = "배송 정보 없음"
	DeliveryStatusRefunded  = "환불 완료"
	TrackingNumberUnknown   = "배송 추적번호 없음"
	TrackingNumberNotLoaded = "N/A"
)

// PaymentMethod is the payment descriptor sent with a payment request
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "카드"
	PaymentBankTransfer PaymentMethod = "계좌이체"
	PaymentCustom       PaymentMethod = "custom"
)

// IsValid checks if the payment method is supported
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCard, PaymentBankTransfer, PaymentCustom:
		return true
	default:
		return false
	}
}

// DefaultPayment picks the payment method and prefilled payment info for a user:
// a saved card wins over a saved bank account, otherwise the user types it in.
func DefaultPayment(u User) (PaymentMethod, string) {
	switch {
	case u.CardNumber != "":
		return PaymentCard, u.CardNumber
	case u.BankAccount != "":
		return PaymentBankTransfer, u.BankAccount
	default:
		return PaymentCustom, ""
	}
}

// EventType names a checkout audit event
type EventType string

const (
	EventOrderSubmitted   EventType = "order_submitted"
	EventPaymentCompleted EventType = "payment_completed"
	EventPaymentFailed    EventType = "payment_failed"
	EventRefundRequested  EventType = "refund_requested"
)
