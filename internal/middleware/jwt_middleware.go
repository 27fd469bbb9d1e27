package middleware

import (
	"log"
	"strings"

	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// AuthRequired checks for a valid bearer token and stores the authenticated
// user in the request context as the explicit actor for downstream handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authorization header is required",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.UserFromToken(parts[1])
		if err != nil {
			log.Printf("Token authentication failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired token",
			})
		}

		c.Locals(actorKey, user)
		return c.Next()
	}
}

// ActiveRequired rejects requests from suspended or banned accounts.
func ActiveRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := Actor(c)
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthenticated",
			})
		}

		if !actor.IsActive() {
			message := "Your account is not active."
			switch actor.Status {
			case models.StatusSuspended:
				message = "Your account has been suspended. Please contact support."
			case models.StatusBanned:
				message = "Your account has been banned. Please contact support."
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": message,
				"status":  actor.Status,
			})
		}
		return c.Next()
	}
}

// RoleRequired rejects requests from actors holding none of the given roles.
func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := Actor(c)
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthenticated",
			})
		}

		if !actor.HasAnyRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "You do not have permission to access this resource",
			})
		}
		return c.Next()
	}
}

// Actor returns the authenticated user stored by AuthRequired, or nil.
func Actor(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(actorKey).(*models.User); ok {
		return user
	}
	return nil
}
