package handlers

import (
	"errors"

	"mealboard/internal/dto"
	"mealboard/internal/models"
	"mealboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MenuHandler struct {
	menuService *service.MenuService
	logger      *zap.Logger
}

func NewMenuHandler(menuService *service.MenuService, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		logger:      logger,
	}
}

// GetMenu godoc
// @Summary Active menu
// @Tags menu
// @Produce json
// @Success 200 {array} models.MenuItemLite
// @Security Bearer
// @Router /menu [get]
func (h *MenuHandler) GetMenu(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	menu, err := h.menuService.Menu(c.Context(), householdID)
	if err != nil {
		h.logger.Error("Failed to load menu", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load menu",
		})
	}

	return c.JSON(menu)
}

// AddMenuItem godoc
// @Summary Put a recipe on the menu
// @Description Accepts an existing recipe id or a full recipe payload which is saved first
// @Tags menu
// @Accept json
// @Produce json
// @Param request body dto.AddMenuItemRequest true "Menu item"
// @Success 201 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security Bearer
// @Router /menu [post]
func (h *MenuHandler) AddMenuItem(c *fiber.Ctx) error {
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

	var req dto.AddMenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
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

	var recipe *models.Recipe
	if req.Recipe != nil {
		recipe = req.Recipe.ToModel()
	}
	if recipeID == nil && recipe == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Either recipe or recipe_id is required",
		})
	}

	addedID, err := h.menuService.Add(c.Context(), householdID, userID, recipeID, recipe, req.Note, req.Date)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyOnMenu) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "That recipe is already added to the menu",
			})
		}
		h.logger.Error("Failed to add menu item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add menu item",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"recipe_id": addedID.String()})
}

// GetMenuRecipe godoc
// @Summary Full recipe for a menu entry
// @Tags menu
// @Produce json
// @Param recipe_id path string true "Recipe id"
// @Success 200 {object} dto.RecipeResponse
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /menu/recipes/{recipe_id} [get]
func (h *MenuHandler) GetMenuRecipe(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	recipeID, err := uuid.Parse(c.Params("recipe_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recipe id",
		})
	}

	recipe, err := h.menuService.Recipe(c.Context(), householdID, recipeID)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Recipe not found",
			})
		}
		h.logger.Error("Failed to load recipe", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load recipe",
		})
	}

	return c.JSON(dto.MakeRecipeResponse(recipe))
}

// FinishMenuItem godoc
// @Summary Finish a cooked recipe
// @Description Removes the recipe from the menu and records the interaction with an optional rating
// @Tags menu
// @Accept json
// @Produce json
// @Param request body dto.FinishMenuItemRequest true "Finish request"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /menu/finish [post]
func (h *MenuHandler) FinishMenuItem(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	var req dto.FinishMenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recipe id",
		})
	}

	if err := h.menuService.Finish(c.Context(), householdID, recipeID, req.Rating); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Issue occurred with finding recipe to add rating to",
			})
		}
		h.logger.Error("Failed to finish menu item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to finish menu item",
		})
	}

	return c.JSON(fiber.Map{"message": "Successfully removed from menu"})
}

// RemoveMenuItem godoc
// @Summary Take a recipe off the menu
// @Tags menu
// @Produce json
// @Param recipe_id path string true "Recipe id"
// @Success 200 {object} map[string]string
// @Security Bearer
// @Router /menu/{recipe_id} [delete]
func (h *MenuHandler) RemoveMenuItem(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	recipeID, err := uuid.Parse(c.Params("recipe_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recipe id",
		})
	}

	if err := h.menuService.Remove(c.Context(), householdID, recipeID); err != nil {
		h.logger.Error("Failed to remove menu item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove menu item",
		})
	}

	return c.JSON(fiber.Map{"message": "Removed from menu"})
}

// UpdateMenuItem godoc
// @Summary Update a menu entry's note or date
// @Tags menu
// @Accept json
// @Produce json
// @Param recipe_id path string true "Recipe id"
// @Param request body dto.UpdateMenuItemRequest true "Updated fields"
// @Success 200 {object} map[string]string
// @Security Bearer
// @Router /menu/{recipe_id} [put]
func (h *MenuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	recipeID, err := uuid.Parse(c.Params("recipe_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recipe id",
		})
	}

	var req dto.UpdateMenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.menuService.Update(c.Context(), householdID, recipeID, req.Note, req.Date); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Menu item not found",
			})
		}
		h.logger.Error("Failed to update menu item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update menu item",
		})
	}

	return c.JSON(fiber.Map{"message": "Menu item updated"})
}
