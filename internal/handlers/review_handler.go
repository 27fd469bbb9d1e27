package handlers

import (
	"log"

	"pasar/internal/middleware"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the review routes on an authenticated router group.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products/:productId/reviews", h.HandleListReviews)
	router.Post("/products/:productId/reviews", h.HandleCreateReview)
	router.Put("/reviews/:id", h.HandleUpdateReview)
	router.Delete("/reviews/:id", h.HandleDeleteReview)
}

// HandleListReviews retrieves a page of reviews for a product.
func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	productID := c.Params("productId")
	page, perPage := paginationParams(c)

	reviews, total, err := h.service.ListReviews(productID, page, perPage)
	if err != nil {
		return errorResponse(c, err)
	}

	average, err := h.service.AverageRating(productID)
	if err != nil {
		log.Printf("Error averaging rating for product %s: %v", productID, err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    reviews,
		"meta": fiber.Map{
			"current_page":   page,
			"total":          total,
			"average_rating": average,
		},
	})
}

// HandleCreateReview adds the actor's review of a product.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var req services.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	review, err := h.service.CreateReview(c.Params("productId"), req, middleware.Actor(c))
	if err != nil {
		log.Printf("Error creating review: %v", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Review created successfully",
		"data":    review,
	})
}

// HandleUpdateReview updates a review the actor authored.
func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	var req services.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	review, err := h.service.UpdateReview(c.Params("id"), req, middleware.Actor(c))
	if err != nil {
		log.Printf("Error updating review: %v", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Review updated successfully",
		"data":    review,
	})
}

// HandleDeleteReview deletes a review the actor authored.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	if err := h.service.DeleteReview(c.Params("id"), middleware.Actor(c)); err != nil {
		log.Printf("Error deleting review: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Review deleted successfully",
	})
}
