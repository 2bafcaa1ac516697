package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Request identity placed in locals by the auth and household middleware.

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("userID").(string)
	return uuid.Parse(raw)
}

func currentHouseholdID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("householdID").(string)
	return uuid.Parse(raw)
}
