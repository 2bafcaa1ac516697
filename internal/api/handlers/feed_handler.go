package handlers

import (
	"errors"

	"mealboard/internal/dto"
	"mealboard/internal/scraper"
	"mealboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FeedHandler struct {
	feedService   *service.FeedService
	recipeService *service.RecipeService
	logger        *zap.Logger
}

func NewFeedHandler(feedService *service.FeedService, recipeService *service.RecipeService, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		feedService:   feedService,
		recipeService: recipeService,
		logger:        logger,
	}
}

// GetFeed godoc
// @Summary Home feed
// @Description Ranked recipe feed for the caller's household
// @Tags feed
// @Produce json
// @Param page query int false "Feed page" default(0)
// @Success 200 {object} dto.FeedResponse
// @Security Bearer
// @Router /feed [get]
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	page := c.QueryInt("page", 0)
	if page < 0 {
		page = 0
	}

	recipes, err := h.feedService.GetFeed(c.Context(), householdID, page)
	if err != nil {
		h.logger.Error("Feed assembly failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build feed",
		})
	}

	return c.JSON(dto.FeedResponse{Recipes: recipes})
}

// Search godoc
// @Summary Search recipes
// @Description Relevance-ranked search over own and external recipes. Tokens prefixed with # are tags.
// @Tags feed
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} dto.FeedResponse
// @Security Bearer
// @Router /feed/search [get]
func (h *FeedHandler) Search(c *fiber.Ctx) error {
	householdID, err := currentHouseholdID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	keywords, tags := service.SplitQuery(c.Query("q"))

	recipes, err := h.feedService.Search(c.Context(), householdID, keywords, tags)
	if err != nil {
		h.logger.Error("Search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	return c.JSON(dto.FeedResponse{Recipes: recipes})
}

// AddRecipe godoc
// @Summary Add a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body dto.RecipeRequest true "Recipe"
// @Success 201 {object} dto.RecipeResponse
// @Security Bearer
// @Router /recipes [post]
func (h *FeedHandler) AddRecipe(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	var req dto.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	recipe, err := h.recipeService.Add(c.Context(), userID, req.ToModel())
	if err != nil {
		h.logger.Error("Failed to add recipe", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add recipe",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MakeRecipeResponse(recipe))
}

// ImportRecipe godoc
// @Summary Import a recipe from a URL
// @Description Scrapes a third-party recipe page into a normalized recipe without saving it
// @Tags recipes
// @Produce json
// @Param url query string true "Recipe page URL"
// @Success 200 {object} dto.RecipeResponse
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /recipes/import [post]
func (h *FeedHandler) ImportRecipe(c *fiber.Ctx) error {
	url := c.Query("url")
	if url == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url is required",
		})
	}

	recipe, err := h.recipeService.Import(c.Context(), url)
	if err != nil {
		if errors.Is(err, scraper.ErrNoRecipeData) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No recipe found at the provided URL",
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invalid provided URL",
		})
	}

	return c.JSON(dto.MakeRecipeResponse(recipe))
}

// UpdateRecipe godoc
// @Summary Update an owned recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path string true "Recipe id"
// @Param request body dto.RecipeRequest true "Updated recipe"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /recipes/{id} [put]
func (h *FeedHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User information incomplete",
		})
	}

	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recipe id",
		})
	}

	var req dto.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.recipeService.Update(c.Context(), userID, recipeID, req.ToModel()); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Recipe not found",
			})
		}
		h.logger.Error("Failed to update recipe", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update recipe",
		})
	}

	return c.JSON(fiber.Map{"message": "Recipe updated"})
}
