package handlers

import (
	"fmt"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes. Reads are open to every role;
// writes need an admin token.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	admin := middleware.RequireRole(models.RoleAdmin)
	productRoutes.Post("/", admin, h.HandleCreateProduct)
	productRoutes.Put("/:id", admin, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", admin, h.HandleDeleteProduct)
}

// ProductRequest is the body for creating or editing a product. Category is only
// read on create.
type ProductRequest struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Category models.Category `json:"category" validate:"omitempty,oneof=Generic Groceries Clothes Electronics"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Stock    int             `json:"stock" validate:"gte=0"`
	Spec1    string          `json:"spec1" validate:"max=100"`
	Spec2    string          `json:"spec2" validate:"max=100"`
}

// HandleGetProducts lists the catalog.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, newProductResponse(p))
	}
	return c.JSON(resp)
}

// HandleGetProductByID returns one product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newProductResponse(*product))
}

// HandleCreateProduct adds a product to the catalog.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	product := models.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
		Spec1:    req.Spec1,
		Spec2:    req.Spec2,
	}
	if err := h.service.CreateProduct(&product); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newProductResponse(product))
}

// HandleUpdateProduct edits name, price, stock and spec fields.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	updated, err := h.service.UpdateProduct(id, services.ProductUpdate{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
		Spec1: req.Spec1,
		Spec2: req.Spec2,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newProductResponse(*updated))
}

// HandleDeleteProduct removes a product from the catalog.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}
	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %d deleted successfully", id),
	})
}
