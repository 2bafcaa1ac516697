package service

import (
	"context"
	"time"

	"mealboard/internal/models"
	"mealboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeImporter turns a third-party recipe URL into a normalized recipe.
// The scraper client satisfies it.
type RecipeImporter interface {
	Recipe(ctx context.Context, url string) (*models.Recipe, error)
}

type RecipeService struct {
	recipeRepo *repository.RecipeRepository
	importer   RecipeImporter
	logger     *zap.Logger

	now func() time.Time
}

func NewRecipeService(recipeRepo *repository.RecipeRepository, importer RecipeImporter, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		importer:   importer,
		logger:     logger,
		now:        time.Now,
	}
}

// Add stores a recipe under the caller's collection.
func (s *RecipeService) Add(ctx context.Context, userID uuid.UUID, recipe *models.Recipe) (*models.Recipe, error) {
	recipe.ID = uuid.New()
	recipe.AuthorID = userID
	if recipe.PermissionsRequired == "" {
		recipe.PermissionsRequired = "household"
	}
	recipe.CreatedAt = s.now()
	recipe.UpdatedAt = recipe.CreatedAt

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	s.logger.Info("Recipe added",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("author_id", userID.String()),
	)
	return recipe, nil
}

func (s *RecipeService) Update(ctx context.Context, userID uuid.UUID, recipeID uuid.UUID, recipe *models.Recipe) error {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if existing == nil || existing.AuthorID != userID {
		return ErrRecipeNotFound
	}

	recipe.ID = recipeID
	recipe.UpdatedAt = s.now()
	return s.recipeRepo.Update(ctx, recipe)
}

// Import scrapes a recipe page and returns the normalized recipe without
// saving it; the caller reviews it before adding.
func (s *RecipeService) Import(ctx context.Context, url string) (*models.Recipe, error) {
	recipe, err := s.importer.Recipe(ctx, url)
	if err != nil {
		s.logger.Warn("Recipe import failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	return recipe, nil
}
