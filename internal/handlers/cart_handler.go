package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests against the caller's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the cart routes. Only customers own a cart.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart", middleware.RequireRole(models.RoleCustomer), h.openCart)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Put("/items/:productId", h.HandleEditItem)
	cartRoutes.Delete("/items/:productId", h.HandleDeleteItem)
}

// openCart gives a customer whose token outlived the process a fresh cart.
func (h *CartHandler) openCart(c *fiber.Ctx) error {
	if err := h.service.Open(middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.Next()
}

// AddItemRequest is the body for adding a product to the cart.
type AddItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity"`
}

// EditItemRequest is the body for re-basing a cart line.
type EditItemRequest struct {
	Quantity int `json:"quantity"`
}

// HandleGetCart returns the cart priced at current catalog prices.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	view, err := h.service.View(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// HandleAddItem reserves stock for a product.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	outcome, err := h.service.AddItem(middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondOutcome(c, outcome)
}

// HandleEditItem sets a cart line to an absolute quantity.
func (h *CartHandler) HandleEditItem(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}
	var req EditItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	outcome, err := h.service.EditItem(middleware.UserID(c), productID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondOutcome(c, outcome)
}

// HandleDeleteItem removes a cart line and restores its stock.
func (h *CartHandler) HandleDeleteItem(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}

	outcome, err := h.service.DeleteItem(middleware.UserID(c), productID)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondOutcome(c, outcome)
}

func (h *CartHandler) respondOutcome(c *fiber.Ctx, outcome *services.CartOutcome) error {
	view, err := h.service.View(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  outcome.Message,
		"product":  newProductResponse(outcome.Product),
		"quantity": outcome.Quantity,
		"cart":     view,
	})
}
