package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HouseholdResolver finds the household a user belongs to, creating one
// when the user has none. Every authenticated request ends up with a
// household id in its locals.
type HouseholdResolver interface {
	ResolveForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

func HouseholdMiddleware(resolver HouseholdResolver, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawID, _ := c.Locals("userID").(string)
		userID, err := uuid.Parse(rawID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User information incomplete",
			})
		}

		householdID, err := resolver.ResolveForUser(c.Context(), userID)
		if err != nil {
			logger.Error("Failed to resolve household", zap.String("user_id", rawID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to resolve household",
			})
		}

		c.Locals("householdID", householdID.String())
		return c.Next()
	}
}
