package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/domain"
	"github.com/swims/storefront/internal/events"
	"github.com/swims/storefront/internal/repository"
)

// auditor writes checkout events to Postgres and Kafka. Both writes are
// best-effort: a failure is logged and never fails the user's request.
type auditor struct {
	repo      repository.CheckoutEventRepository
	publisher events.Publisher
	logger    *zap.Logger
}

func (a *auditor) record(ctx context.Context, userID int64, orderID *int64, eventType domain.EventType, data map[string]interface{}) {
	event := &domain.CheckoutEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		OrderID:   orderID,
		EventType: eventType,
		EventData: data,
		CreatedAt: time.Now(),
	}

	if a.repo != nil {
		if err := a.repo.Create(ctx, event); err != nil {
			a.logger.Error("Failed to store checkout event",
				zap.String("event_type", string(eventType)),
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, *event); err != nil {
			a.logger.Warn("Failed to publish checkout event",
				zap.String("event_type", string(eventType)),
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}
}

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

type auditService struct {
	repo   repository.CheckoutEventRepository
	logger *zap.Logger
}

// NewAuditService creates the read side of the checkout audit trail
func NewAuditService(repos *repository.Repositories, logger *zap.Logger) *auditService {
	return &auditService{
		repo:   repos.CheckoutEvent,
		logger: logger,
	}
}

// ListEvents returns a user's most recent checkout events, newest first
func (s *auditService) ListEvents(ctx context.Context, userID int64, limit int) ([]*domain.CheckoutEvent, error) {
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if limit > maxEventLimit {
		limit = maxEventLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
