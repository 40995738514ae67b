package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/domain"
)

type checkoutEventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCheckoutEventRepository creates a new checkout event repository
func NewCheckoutEventRepository(db *sql.DB, logger *zap.Logger) *checkoutEventRepository {
	return &checkoutEventRepository{
		db:     db,
		logger: logger,
	}
}

func (r *checkoutEventRepository) Create(ctx context.Context, event *domain.CheckoutEvent) error {
	query := `
		INSERT INTO checkout_events (id, user_id, order_id, event_type, event_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	data, err := json.Marshal(event.EventData)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	var orderID sql.NullInt64
	if event.OrderID != nil {
		orderID = sql.NullInt64{Int64: *event.OrderID, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, query,
		event.ID,
		event.UserID,
		orderID,
		string(event.EventType),
		data,
		event.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create checkout event", zap.Error(err))
		return err
	}

	return nil
}

func (r *checkoutEventRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.CheckoutEvent, error) {
	query := `
		SELECT id, user_id, order_id, event_type, event_data, created_at
		FROM checkout_events
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("Failed to query checkout events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.CheckoutEvent, 0)
	for rows.Next() {
		var event domain.CheckoutEvent
		var orderID sql.NullInt64
		var eventType string
		var data []byte

		if err := rows.Scan(
			&event.ID,
			&event.UserID,
			&orderID,
			&eventType,
			&data,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}

		event.EventType = domain.EventType(eventType)
		if orderID.Valid {
			id := orderID.Int64
			event.OrderID = &id
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &event.EventData); err != nil {
				return nil, fmt.Errorf("failed to unmarshal event data: %w", err)
			}
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
