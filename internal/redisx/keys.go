package redisx

import (
	"fmt"
	"time"
)

const (
	KeyIdemCheckout = "storefront:idem:checkout:%d:%s"

	TTLIdempotencyPending = 2 * time.Minute
)

// pendingMarker is stored while the first request for a key is still running
const pendingMarker = "pending"

func CheckoutKey(userID int64, idempotencyKey string) string {
	return fmt.Sprintf(KeyIdemCheckout, userID, idempotencyKey)
}
