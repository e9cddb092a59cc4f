package services

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// NotificationService consumes order events and records the delivery notice that
// would be sent to the customer.
type NotificationService struct {
	logger *zap.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(logger *zap.Logger) *NotificationService {
	return &NotificationService{logger: logger}
}

// HandleOrderPlaced processes one order.placed message body. A malformed body is
// an error so the consumer can reject it.
func (s *NotificationService) HandleOrderPlaced(body []byte) (string, error) {
	var event OrderPlacedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return "", fmt.Errorf("failed to decode order event: %w", err)
	}
	if event.OrderID == 0 {
		return "", fmt.Errorf("order event %s has no order id", event.EventID)
	}

	notice := fmt.Sprintf("Dear %s, your order #%d has been placed. Total: %s. Payment: %s. Delivery on %s, %s.",
		event.CustomerName,
		event.OrderID,
		event.GrandTotal.StringFixed(2),
		event.PaymentMethod,
		event.DeliveryDate.Format("2006-01-02"),
		event.DeliveryTimeSlot)

	s.logger.Info("order notice",
		zap.String("event_id", event.EventID),
		zap.Int("order_id", event.OrderID),
		zap.Int("customer_id", event.CustomerID),
		zap.String("notice", notice))
	return notice, nil
}
