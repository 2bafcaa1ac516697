package handlers

import (
	"errors"

	"mealboard/internal/dto"
	"mealboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HouseholdHandler struct {
	householdService *service.HouseholdService
	logger           *zap.Logger
}

func NewHouseholdHandler(householdService *service.HouseholdService, logger *zap.Logger) *HouseholdHandler {
	return &HouseholdHandler{
		householdService: householdService,
		logger:           logger,
	}
}

// GetHousehold godoc
// @Summary List household members
// @Tags household
// @Produce json
// @Success 200 {array} models.UserLite
// @Security Bearer
// @Router /household [get]
func (h *HouseholdHandler) GetHousehold(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	members, err := h.householdService.Members(c.Context(), householdID)
	if err != nil {
		if errors.Is(err, service.ErrHouseholdNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No household found",
			})
		}
		h.logger.Error("Failed to list household members", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load household",
		})
	}

	return c.JSON(members)
}

// CreateHousehold godoc
// @Summary Start a new household
// @Description Leaves the caller's current household and creates a fresh one they own
// @Tags household
// @Produce json
// @Success 201 {object} map[string]string
// @Security Bearer
// @Router /household [post]
func (h *HouseholdHandler) CreateHousehold(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	household, err := h.householdService.CreateForUser(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to create household", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create household",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"household_id": household.ID.String()})
}

// GetJoinCode godoc
// @Summary Get the household join code
// @Description Returns the active join code, minting a fresh one when expired
// @Tags household
// @Produce json
// @Success 200 {object} map[string]string
// @Security Bearer
// @Router /household/code [get]
func (h *HouseholdHandler) GetJoinCode(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	code, err := h.householdService.JoinCode(c.Context(), householdID)
	if err != nil {
		h.logger.Error("Failed to issue join code", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue join code",
		})
	}

	return c.JSON(fiber.Map{"code": code})
}

// Join godoc
// @Summary Join a household by code
// @Tags household
// @Accept json
// @Produce json
// @Param request body dto.JoinHouseholdRequest true "Join request"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security Bearer
// @Router /household/join [post]
func (h *HouseholdHandler) Join(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	var req dto.JoinHouseholdRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	householdID, err := h.householdService.Join(c.Context(), userID, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidJoinCode) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid household code",
			})
		}
		h.logger.Error("Failed to join household", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to join household",
		})
	}

	return c.JSON(fiber.Map{"household_id": householdID.String()})
}

// Kick godoc
// @Summary Remove a user from the household
// @Tags household
// @Produce json
// @Param user_id path string true "User id"
// @Success 200 {object} map[string]string
// @Security Bearer
// @Router /household/members/{user_id} [delete]
func (h *HouseholdHandler) Kick(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	if err := h.householdService.Kick(c.Context(), householdID, userID); err != nil {
		h.logger.Error("Failed to kick user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove user",
		})
	}

	return c.JSON(fiber.Map{"message": "User removed from household"})
}
