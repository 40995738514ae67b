package errors

import (
	"fmt"

	"github.com/swims/storefront/internal/domain"
)

// ErrNotFound is returned when a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when the caller cannot be identified
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrValidation is returned for malformed input, before any remote call is made
type ErrValidation struct {
	Field   string
	Message string
	Err     error
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ErrValidation) Unwrap() error {
	return e.Err
}

// ErrUpstream wraps a failed call to the commerce API. Body is kept verbatim
// so the caller can show the remote reason.
type ErrUpstream struct {
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *ErrUpstream) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed: status %d, body: %s", e.Operation, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// ErrNotRefundable is returned when a refund is requested for an order that
// is already refunded or was paid with a coupon
type ErrNotRefundable struct {
	OrderID int64
	Reason  domain.RefundBlock
}

func (e *ErrNotRefundable) Error() string {
	return fmt.Sprintf("order %d is not refundable: %s", e.OrderID, e.Reason)
}

// ErrConflict is returned when a request collides with another one in flight,
// such as a replayed checkout or a superseded search
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}
