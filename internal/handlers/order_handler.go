package handlers

import (
	"log"
	"strconv"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes on an authenticated router group.
// /vendor/orders is a role-gated alias of the order index.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Get("/", h.HandleListOrders)
	orders.Post("/", h.HandleCreateOrder)
	orders.Get("/:id", h.HandleGetOrderByID)
	orders.Put("/:id/status", middleware.RoleRequired(models.RoleVendor, models.RoleAdmin), h.HandleUpdateOrderStatus)
	orders.Delete("/:id", h.HandleCancelOrder)

	router.Get("/vendor/orders", middleware.RoleRequired(models.RoleVendor, models.RoleAdmin), h.HandleListOrders)
}

// HandleListOrders retrieves a page of orders visible to the actor.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	filters := repositories.OrderFilters{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	page, perPage := paginationParams(c)

	result, err := h.service.ListOrders(filters, actor, page, perPage)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return errorResponse(c, err)
	}

	data := make([]fiber.Map, 0, len(result.Orders))
	for i := range result.Orders {
		order := &result.Orders[i]
		data = append(data, fiber.Map{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"total_amount": order.TotalAmount.StringFixed(2),
			"status":       order.Status,
			"items_count":  len(order.Items),
			"customer": fiber.Map{
				"id":    order.User.ID,
				"name":  order.User.Name,
				"email": order.User.Email,
			},
			"created_at": order.CreatedAt,
			"updated_at": order.UpdatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"meta": fiber.Map{
			"current_page": result.CurrentPage,
			"last_page":    result.LastPage,
			"total":        result.Total,
		},
	})
}

// HandleCreateOrder places a new order for the actor.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req services.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	order, err := h.service.CreateOrder(req, middleware.Actor(c))
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order created successfully",
		"data":    orderResponse(order),
	})
}

// HandleGetOrderByID retrieves a single order, subject to the view policy.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.Params("id"), middleware.Actor(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    orderResponse(order),
	})
}

// HandleUpdateOrderStatus transitions an order to a new status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequestResponse(c, "Invalid request body")
	}
	if body.Status == "" {
		return badRequestResponse(c, "Status is required")
	}

	order, err := h.service.UpdateOrderStatus(c.Params("id"), body.Status, middleware.Actor(c))
	if err != nil {
		log.Printf("Error updating order status: %v", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order status updated successfully",
		"data":    orderResponse(order),
	})
}

// HandleCancelOrder cancels an order, restoring item quantities to stock.
// Cancellation is a status transition; the order rows stay in place.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	order, err := h.service.CancelOrder(c.Params("id"), middleware.Actor(c))
	if err != nil {
		log.Printf("Error cancelling order: %v", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order cancelled successfully",
		"data":    orderResponse(order),
	})
}

// orderResponse shapes the order payload returned to callers.
func orderResponse(order *models.Order) fiber.Map {
	items := make([]fiber.Map, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, fiber.Map{
			"product": fiber.Map{
				"id":        item.ProductID,
				"name":      item.Product.Name,
				"vendor_id": item.Product.VendorID,
			},
			"quantity": item.Quantity,
			"price":    item.Price.StringFixed(2),
			"subtotal": item.Subtotal.StringFixed(2),
		})
	}
	return fiber.Map{
		"id":           order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount.StringFixed(2),
		"status":       order.Status,
		"items":        items,
		"customer": fiber.Map{
			"id":    order.User.ID,
			"name":  order.User.Name,
			"email": order.User.Email,
		},
		"created_at": order.CreatedAt,
		"updated_at": order.UpdatedAt,
	}
}

// paginationParams reads page and per_page query parameters.
func paginationParams(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.Query("per_page", "15"))
	if err != nil || perPage < 1 || perPage > 100 {
		perPage = 15
	}
	return page, perPage
}
