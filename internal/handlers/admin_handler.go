package handlers

import (
	"log"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles HTTP requests for the admin oversight endpoints.
type AdminHandler struct {
	service *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

// RegisterRoutes registers the admin routes on an authenticated router group.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	admin := router.Group("/admin", middleware.RoleRequired(models.RoleAdmin))
	admin.Get("/users", h.HandleGetUsers)
	admin.Get("/statistics", h.HandleGetStatistics)
}

// HandleGetUsers retrieves a page of users.
func (h *AdminHandler) HandleGetUsers(c *fiber.Ctx) error {
	page, perPage := paginationParams(c)

	users, total, err := h.service.GetUsers(page, perPage)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
		"meta": fiber.Map{
			"current_page": page,
			"total":        total,
		},
	})
}

// HandleGetStatistics retrieves the storewide totals.
func (h *AdminHandler) HandleGetStatistics(c *fiber.Ctx) error {
	stats, err := h.service.GetStatistics()
	if err != nil {
		log.Printf("Error collecting statistics: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
