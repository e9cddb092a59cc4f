package handlers

import (
	"time"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles checkout and order history.
type OrderHandler struct {
	service  *services.OrderService
	checkout *services.CheckoutService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, checkout *services.CheckoutService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		checkout: checkout,
	}
}

// RegisterRoutes registers checkout and order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	customer := middleware.RequireRole(models.RoleCustomer)
	router.Get("/checkout/slots", h.HandleGetTimeSlots)
	router.Post("/checkout", customer, h.HandleCheckout)

	orderRoutes := router.Group("/orders", middleware.RequireRole(models.RoleCustomer, models.RoleAdmin))
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// CheckoutRequest carries the delivery details entered at checkout.
type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address"`
	ContactNumber   string `json:"contact_number"`
	TimeSlot        string `json:"time_slot"`
	// DeliveryDate is YYYY-MM-DD; empty means tomorrow.
	DeliveryDate string `json:"delivery_date"`
}

// HandleGetTimeSlots lists the delivery slots offered at checkout.
func (h *OrderHandler) HandleGetTimeSlots(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"time_slots":     models.DeliveryTimeSlots,
		"payment_method": models.PaymentCashOnDelivery,
	})
}

// HandleCheckout commits the caller's cart as an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	details := services.DeliveryDetails{
		Address:       req.DeliveryAddress,
		ContactNumber: req.ContactNumber,
		TimeSlot:      req.TimeSlot,
	}
	if req.DeliveryDate != "" {
		date, err := time.ParseInLocation("2006-01-02", req.DeliveryDate, time.Local)
		if err != nil {
			return badRequest(c, "Delivery date must be YYYY-MM-DD", err)
		}
		details.DeliveryDate = date
	}

	order, err := h.checkout.Checkout(middleware.UserID(c), details)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Your order has been placed successfully! Payment: " + order.PaymentMethod + ".",
		"order":   order,
	})
}

// HandleGetOrders returns the caller's orders; admins see the whole ledger.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	var (
		orders []models.Order
		err    error
	)
	if middleware.Role(c) == models.RoleAdmin {
		orders, err = h.service.GetAllOrders()
	} else {
		orders, err = h.service.OrdersFor(middleware.UserID(c))
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID returns one order the caller may see.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid order ID", err)
	}

	var order *models.Order
	if middleware.Role(c) == models.RoleAdmin {
		order, err = h.service.GetOrderByID(orderID)
	} else {
		order, err = h.service.GetForCustomer(middleware.UserID(c), orderID)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
