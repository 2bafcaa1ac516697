package handlers

import (
	"errors"

	"mealboard/internal/dto"
	"mealboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShoppingHandler struct {
	shoppingService *service.ShoppingService
	logger          *zap.Logger
}

func NewShoppingHandler(shoppingService *service.ShoppingService, logger *zap.Logger) *ShoppingHandler {
	return &ShoppingHandler{
		shoppingService: shoppingService,
		logger:          logger,
	}
}

// GetList godoc
// @Summary Household shopping list
// @Description Items checked off more than twelve hours ago are dropped before listing
// @Tags shopping
// @Produce json
// @Success 200 {array} models.ShoppingItem
// @Security Bearer
// @Router /shopping-list [get]
func (h *ShoppingHandler) GetList(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	items, err := h.shoppingService.List(c.Context(), householdID)
	if err != nil {
		h.logger.Error("Failed to load shopping list", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load shopping list",
		})
	}

	return c.JSON(items)
}

// AddItem godoc
// @Summary Add shopping items
// @Description Accepts a single name or a batch of names, e.g. a recipe's ingredients
// @Tags shopping
// @Accept json
// @Produce json
// @Param request body dto.AddShoppingItemRequest true "New items"
// @Success 201 {array} models.ShoppingItem
// @Security Bearer
// @Router /shopping-list [post]
func (h *ShoppingHandler) AddItem(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	var req dto.AddShoppingItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" && len(req.Names) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Item name is required",
		})
	}

	var recipeID *uuid.UUID
	if req.RecipeID != nil {
		parsed, err := uuid.Parse(*req.RecipeID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid recipe id",
			})
		}
		recipeID = &parsed
	}

	if len(req.Names) > 0 {
		if err := h.shoppingService.AddMany(c.Context(), householdID, userID, req.Names, recipeID); err != nil {
			h.logger.Error("Failed to add shopping items", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to add shopping items",
			})
		}
		items, err := h.shoppingService.List(c.Context(), householdID)
		if err != nil {
			h.logger.Error("Failed to load shopping list", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load shopping list",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(items)
	}

	items, err := h.shoppingService.Add(c.Context(), householdID, userID, req.Name, recipeID)
	if err != nil {
		h.logger.Error("Failed to add shopping item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add shopping item",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(items)
}

// CheckItem godoc
// @Summary Toggle an item's checked state
// @Tags shopping
// @Produce json
// @Param id path string true "Item id"
// @Success 200 {array} models.ShoppingItem
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /shopping-list/{id}/check [post]
func (h *ShoppingHandler) CheckItem(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item id",
		})
	}

	items, err := h.shoppingService.Check(c.Context(), householdID, itemID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Shopping item not found",
			})
		}
		h.logger.Error("Failed to check shopping item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check shopping item",
		})
	}

	return c.JSON(items)
}

// EditItem godoc
// @Summary Rename a shopping item
// @Tags shopping
// @Accept json
// @Produce json
// @Param id path string true "Item id"
// @Param request body dto.EditShoppingItemRequest true "Updated item"
// @Success 200 {array} models.ShoppingItem
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /shopping-list/{id} [put]
func (h *ShoppingHandler) EditItem(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item id",
		})
	}

	var req dto.EditShoppingItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Item name is required",
		})
	}

	items, err := h.shoppingService.Edit(c.Context(), householdID, itemID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Shopping item not found",
			})
		}
		h.logger.Error("Failed to edit shopping item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to edit shopping item",
		})
	}

	return c.JSON(items)
}

// RemoveItem godoc
// @Summary Delete a shopping item
// @Tags shopping
// @Produce json
// @Param id path string true "Item id"
// @Success 200 {array} models.ShoppingItem
// @Security Bearer
// @Router /shopping-list/{id} [delete]
func (h *ShoppingHandler) RemoveItem(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item id",
		})
	}

	items, err := h.shoppingService.Remove(c.Context(), householdID, itemID)
	if err != nil {
		h.logger.Error("Failed to remove shopping item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove shopping item",
		})
	}

	return c.JSON(items)
}
