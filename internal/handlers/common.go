package handlers

import (
	"ridepool/internal/models"

	"github.com/gofiber/fiber/v2"
)

// extractUserClaims is a helper to pull authenticated claims from the
// request context.
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}
