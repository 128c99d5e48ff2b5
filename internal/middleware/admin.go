package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/dto"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/models"
)

// AdminRequired gates mutating endpoints on the role claim. The role is
// issued at registration and never changes, so the token is authoritative.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := CurrentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if claims.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		return c.Next()
	}
}
