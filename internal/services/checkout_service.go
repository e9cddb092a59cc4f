package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DeliveryDetails is what the customer supplies at checkout.
type DeliveryDetails struct {
	Address       string
	ContactNumber string
	TimeSlot      string
	// DeliveryDate defaults to the day after the order is placed.
	DeliveryDate time.Time
}

// CheckoutService turns a reviewed cart into an order on the ledger. A committed
// order cannot be cancelled and its stock is never restored.
type CheckoutService struct {
	inv       *Inventory
	orders    repositories.OrderRepository
	users     repositories.UserRepository
	publisher MessagePublisher // optional
	now       func() time.Time
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService. publisher may be nil.
func NewCheckoutService(inv *Inventory, orders repositories.OrderRepository, users repositories.UserRepository, publisher MessagePublisher, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		inv:       inv,
		orders:    orders,
		users:     users,
		publisher: publisher,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock replaces the time source used for order timestamps.
func (s *CheckoutService) WithClock(now func() time.Time) *CheckoutService {
	s.now = now
	return s
}

// Checkout snapshots the customer's cart into a new order, appends it to the
// ledger and empties the cart. On any failure nothing changes.
func (s *CheckoutService) Checkout(customerID int, details DeliveryDetails) (*models.Order, error) {
	customer, err := s.users.GetByID(customerID)
	if err != nil {
		return nil, fmt.Errorf("checkout for customer %d: %w", customerID, err)
	}
	if err := s.inv.openCart(customer); err != nil {
		return nil, err
	}

	var order models.Order
	err = s.inv.withCart(customerID, func(cart *models.Cart) error {
		if len(cart.Items) == 0 {
			return models.ErrEmptyCart
		}
		placedAt := s.now()
		delivery, err := normalizeDelivery(details, placedAt)
		if err != nil {
			return err
		}

		order = models.Order{
			CustomerID:       customer.ID,
			CustomerName:     customer.Name,
			Items:            make([]models.OrderedItem, 0, len(cart.Items)),
			GrandTotal:       decimal.Zero,
			CreatedAt:        placedAt,
			DeliveryDate:     delivery.DeliveryDate,
			DeliveryTimeSlot: delivery.TimeSlot,
			DeliveryAddress:  delivery.Address,
			ContactNumber:    delivery.ContactNumber,
			PaymentMethod:    models.PaymentCashOnDelivery,
			Status:           models.OrderStatusPlaced,
		}
		for _, item := range cart.Items {
			product, ok := s.inv.products.FindByID(item.ProductID)
			if !ok {
				return fmt.Errorf("cart line for product %d: %w", item.ProductID, models.ErrProductNotFound)
			}
			line := models.NewOrderedItem(product.ID, product.Name, item.Quantity, product.Price)
			order.Items = append(order.Items, line)
			order.GrandTotal = order.GrandTotal.Add(line.LineTotal)
		}

		if err := s.orders.Append(&order); err != nil {
			return err
		}
		cart.Clear()
		return nil
	})
	if err != nil {
		s.logger.Debug("checkout rejected", zap.Int("customer_id", customerID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Int("order_id", order.ID),
		zap.Int("customer_id", order.CustomerID),
		zap.Int("items", len(order.Items)),
		zap.String("grand_total", order.GrandTotal.StringFixed(2)))

	s.publishOrderPlaced(&order)
	return &order, nil
}

// publishOrderPlaced is best effort: the order is already committed.
func (s *CheckoutService) publishOrderPlaced(order *models.Order) {
	if s.publisher == nil {
		s.logger.Debug("no message publisher configured, skipping order event", zap.Int("order_id", order.ID))
		return
	}

	event := OrderPlacedEvent{
		EventID:          uuid.New().String(),
		OrderID:          order.ID,
		CustomerID:       order.CustomerID,
		CustomerName:     order.CustomerName,
		ItemCount:        len(order.Items),
		GrandTotal:       order.GrandTotal,
		PaymentMethod:    order.PaymentMethod,
		DeliveryDate:     order.DeliveryDate,
		DeliveryTimeSlot: order.DeliveryTimeSlot,
		PlacedAt:         order.CreatedAt,
	}
	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("failed to marshal order event", zap.Int("order_id", order.ID), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(RoutingKeyOrderPlaced, body); err != nil {
		s.logger.Warn("failed to publish order event", zap.Int("order_id", order.ID), zap.Error(err))
		return
	}
	s.logger.Debug("published order event", zap.Int("order_id", order.ID), zap.String("event_id", event.EventID))
}

// normalizeDelivery trims the details and fills in the defaults. Delivery is
// never earlier than the day after placedAt.
func normalizeDelivery(details DeliveryDetails, placedAt time.Time) (DeliveryDetails, error) {
	y, m, d := placedAt.Date()
	earliest := time.Date(y, m, d+1, 0, 0, 0, 0, placedAt.Location())
	if details.DeliveryDate.IsZero() {
		details.DeliveryDate = earliest
	} else {
		y, m, d := details.DeliveryDate.Date()
		details.DeliveryDate = time.Date(y, m, d, 0, 0, 0, 0, placedAt.Location())
		if details.DeliveryDate.Before(earliest) {
			return details, fmt.Errorf("delivery date %s is before %s: %w",
				details.DeliveryDate.Format("2006-01-02"), earliest.Format("2006-01-02"), models.ErrMissingDeliveryInfo)
		}
	}

	details.Address = strings.TrimSpace(details.Address)
	details.ContactNumber = strings.TrimSpace(details.ContactNumber)
	details.TimeSlot = strings.TrimSpace(details.TimeSlot)

	if details.Address == "" {
		return details, fmt.Errorf("delivery address is required: %w", models.ErrMissingDeliveryInfo)
	}
	if details.ContactNumber == "" {
		return details, fmt.Errorf("contact number is required: %w", models.ErrMissingDeliveryInfo)
	}
	if details.TimeSlot == "" {
		details.TimeSlot = models.DeliveryTimeSlots[0]
		return details, nil
	}
	for _, slot := range models.DeliveryTimeSlots {
		if slot == details.TimeSlot {
			return details, nil
		}
	}
	return details, fmt.Errorf("unknown delivery time slot %q: %w", details.TimeSlot, models.ErrMissingDeliveryInfo)
}
