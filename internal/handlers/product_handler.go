package handlers

import (
	"log"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Browsing is public; writes
// require an authenticated vendor or admin.
func (h *ProductHandler) RegisterRoutes(public, protected fiber.Router) {
	public.Get("/products", h.HandleListProducts)
	public.Get("/products/:id", h.HandleGetProductByID)

	vendorOrAdmin := middleware.RoleRequired(models.RoleVendor, models.RoleAdmin)
	protected.Post("/products", vendorOrAdmin, h.HandleCreateProduct)
	protected.Put("/products/:id", h.HandleUpdateProduct)
	protected.Delete("/products/:id", h.HandleDeleteProduct)
	protected.Get("/vendor/products", vendorOrAdmin, h.HandleVendorProducts)
}

// HandleListProducts retrieves a page of products with optional filters.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filters := repositories.ProductFilters{
		Status:   c.Query("status"),
		VendorID: c.Query("vendor_id"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("min_price"); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil {
			filters.MinPrice = &price
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil {
			filters.MaxPrice = &price
		}
	}
	page, perPage := paginationParams(c)

	result, err := h.service.ListProducts(filters, page, perPage)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    productListResponse(result.Products),
		"meta": fiber.Map{
			"current_page": result.CurrentPage,
			"last_page":    result.LastPage,
			"total":        result.Total,
		},
	})
}

// HandleGetProductByID retrieves a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    productResponse(product),
	})
}

// HandleCreateProduct creates a product owned by the actor.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req services.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.service.CreateProduct(req, middleware.Actor(c))
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"data":    productResponse(product),
	})
}

// HandleUpdateProduct updates a product the actor owns (or any, for admins).
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req services.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.service.UpdateProduct(c.Params("id"), req, middleware.Actor(c))
	if err != nil {
		log.Printf("Error updating product: %v", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"data":    productResponse(product),
	})
}

// HandleDeleteProduct deletes a product the actor owns (or any, for admins).
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id"), middleware.Actor(c)); err != nil {
		log.Printf("Error deleting product: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// HandleVendorProducts retrieves the actor's own products, any status.
func (h *ProductHandler) HandleVendorProducts(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	page, perPage := paginationParams(c)

	result, err := h.service.VendorProducts(actor.ID, page, perPage)
	if err != nil {
		log.Printf("Error listing vendor products: %v", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    productListResponse(result.Products),
		"meta": fiber.Map{
			"current_page": result.CurrentPage,
			"last_page":    result.LastPage,
			"total":        result.Total,
		},
	})
}

// productResponse shapes the product payload returned to callers. Money
// renders with two fraction digits.
func productResponse(p *models.Product) fiber.Map {
	return fiber.Map{
		"id":             p.ID,
		"vendor_id":      p.VendorID,
		"name":           p.Name,
		"slug":           p.Slug,
		"description":    p.Description,
		"price":          p.Price.StringFixed(2),
		"stock_quantity": p.StockQuantity,
		"status":         p.Status,
		"average_rating": p.AverageRating,
		"created_at":     p.CreatedAt,
		"updated_at":     p.UpdatedAt,
	}
}

func productListResponse(products []models.Product) []fiber.Map {
	data := make([]fiber.Map, 0, len(products))
	for i := range products {
		data = append(data, productResponse(&products[i]))
	}
	return data
}
