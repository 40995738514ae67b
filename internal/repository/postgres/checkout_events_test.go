package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/domain"
)

const insertEventSQL = `
		INSERT INTO checkout_events (id, user_id, order_id, event_type, event_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

func TestCheckoutEventRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCheckoutEventRepository(db, zap.NewNop())
	orderID := int64(55)

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs(sqlmock.AnyArg(), int64(9), sqlmock.AnyArg(), "order_submitted", []byte(`{"total":18000}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	event := &domain.CheckoutEvent{
		UserID:    9,
		OrderID:   &orderID,
		EventType: domain.EventOrderSubmitted,
		EventData: map[string]interface{}{"total": 18000},
	}
	require.NoError(t, repo.Create(context.Background(), event))

	assert.NotEmpty(t, event.ID, "id is assigned")
	assert.False(t, event.CreatedAt.IsZero(), "created_at is assigned")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutEventRepository_CreateFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCheckoutEventRepository(db, zap.NewNop())

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WillReturnError(errors.New("connection reset"))

	err = repo.Create(context.Background(), &domain.CheckoutEvent{UserID: 1, EventType: domain.EventPaymentFailed})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutEventRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCheckoutEventRepository(db, zap.NewNop())
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "user_id", "order_id", "event_type", "event_data", "created_at"}).
		AddRow("e-2", int64(9), int64(55), "payment_completed", []byte(`{"method":"카드"}`), created).
		AddRow("e-1", int64(9), nil, "payment_failed", []byte(`{}`), created.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM checkout_events`)).
		WithArgs(int64(9), 20).
		WillReturnRows(rows)

	events, err := repo.ListByUser(context.Background(), 9, 20)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "e-2", events[0].ID)
	assert.Equal(t, domain.EventPaymentCompleted, events[0].EventType)
	require.NotNil(t, events[0].OrderID)
	assert.Equal(t, int64(55), *events[0].OrderID)
	assert.Equal(t, "카드", events[0].EventData["method"])

	assert.Nil(t, events[1].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
