package repository

import (
	"context"

	"github.com/swims/storefront/internal/domain"
)

// CheckoutEventRepository stores the checkout audit trail
type CheckoutEventRepository interface {
	Create(ctx context.Context, event *domain.CheckoutEvent) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.CheckoutEvent, error)
}

// Repositories groups the storage the BFF owns. Catalog, carts, coupons and
// orders live on the commerce API, not here.
type Repositories struct {
	CheckoutEvent CheckoutEventRepository
}
