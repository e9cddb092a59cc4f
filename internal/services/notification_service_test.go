package services_test

import (
	"encoding/json"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNotificationService_HandleOrderPlaced(t *testing.T) {
	notifier := services.NewNotificationService(zaptest.NewLogger(t))

	body, err := json.Marshal(services.OrderPlacedEvent{
		EventID:          "evt-1",
		OrderID:          12,
		CustomerID:       4,
		CustomerName:     "Jane",
		ItemCount:        2,
		GrandTotal:       decimal.RequireFromString("40"),
		PaymentMethod:    models.PaymentCashOnDelivery,
		DeliveryDate:     time.Date(2025, time.July, 11, 0, 0, 0, 0, time.UTC),
		DeliveryTimeSlot: models.DeliveryTimeSlots[1],
		PlacedAt:         fixedNow,
	})
	require.NoError(t, err)

	notice, err := notifier.HandleOrderPlaced(body)
	require.NoError(t, err)
	assert.Equal(t, "Dear Jane, your order #12 has been placed. Total: 40.00. Payment: Cash On Delivery. Delivery on 2025-07-11, 12:00 PM - 3:00 PM.", notice)
}

func TestNotificationService_RejectsBadMessages(t *testing.T) {
	notifier := services.NewNotificationService(zaptest.NewLogger(t))

	_, err := notifier.HandleOrderPlaced([]byte("{not json"))
	assert.Error(t, err)

	_, err = notifier.HandleOrderPlaced([]byte(`{"event_id":"evt-2"}`))
	assert.Error(t, err)
}
