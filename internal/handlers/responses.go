package handlers

import (
	"errors"
	"fmt"
	"reflect"

	"storefront/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// specLabels names the two spec fields of each category for display.
var specLabels = map[models.Category][2]string{
	models.CategoryGroceries:   {"Production Date", "Expiry Date"},
	models.CategoryClothes:     {"Size", "Made In"},
	models.CategoryElectronics: {"Brand", "Model"},
}

type specField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type productResponse struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Category models.Category `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Specs    []specField     `json:"specs"`
}

func newProductResponse(p models.Product) productResponse {
	resp := productResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
		Specs:    []specField{},
	}
	if labels, ok := specLabels[p.Category]; ok {
		resp.Specs = append(resp.Specs,
			specField{Label: labels[0], Value: p.Spec1},
			specField{Label: labels[1], Value: p.Spec2})
	}
	return resp
}

// newValidator returns a validator that understands decimal.Decimal fields.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validationFailed renders validator errors the same way for every handler.
func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// respondError maps a service failure to its HTTP status and message.
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *models.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":      fmt.Sprintf("Not enough stock. Max possible for cart: %d", stockErr.Max),
			"error":        err.Error(),
			"max_quantity": stockErr.Max,
		})
	}

	status, message := fiber.StatusInternalServerError, "Request failed"
	switch {
	case errors.Is(err, models.ErrInvalidQuantity):
		status, message = fiber.StatusBadRequest, "Quantity must be positive."
	case errors.Is(err, models.ErrInvalidProduct):
		status, message = fiber.StatusBadRequest, "Invalid product."
	case errors.Is(err, models.ErrItemNotFound):
		status, message = fiber.StatusNotFound, "Product not found in cart."
	case errors.Is(err, models.ErrProductNotFound):
		status, message = fiber.StatusNotFound, "Product not found."
	case errors.Is(err, models.ErrOrderNotFound):
		status, message = fiber.StatusNotFound, "Order not found."
	case errors.Is(err, models.ErrCartNotFound), errors.Is(err, models.ErrUserNotFound):
		status, message = fiber.StatusNotFound, "No cart for this account."
	case errors.Is(err, models.ErrProductReserved):
		status, message = fiber.StatusConflict, "Product is in a customer's cart and cannot be deleted."
	case errors.Is(err, models.ErrEmailTaken):
		status, message = fiber.StatusConflict, "Registration failed"
	case errors.Is(err, models.ErrEmptyCart):
		status, message = fiber.StatusUnprocessableEntity, "Your cart is empty. Add some products first!"
	case errors.Is(err, models.ErrMissingDeliveryInfo):
		status, message = fiber.StatusUnprocessableEntity, "Delivery details are incomplete."
	case errors.Is(err, models.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, "Authentication failed"
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
