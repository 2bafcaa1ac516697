package service

import (
	"context"
	"errors"
	"time"

	"mealboard/internal/models"
	"mealboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrAlreadyOnMenu  = errors.New("recipe is already on the menu")
)

type MenuService struct {
	menuRepo      *repository.MenuRepository
	householdRepo *repository.HouseholdRepository
	recipeRepo    *repository.RecipeRepository
	logger        *zap.Logger

	now func() time.Time
}

func NewMenuService(
	menuRepo *repository.MenuRepository,
	householdRepo *repository.HouseholdRepository,
	recipeRepo *repository.RecipeRepository,
	logger *zap.Logger,
) *MenuService {
	return &MenuService{
		menuRepo:      menuRepo,
		householdRepo: householdRepo,
		recipeRepo:    recipeRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// Menu lists the active menu joined with recipe titles and images. Menu
// entries whose recipe is no longer visible to the household are skipped.
func (s *MenuService) Menu(ctx context.Context, householdID uuid.UUID) ([]models.MenuItemLite, error) {
	items, err := s.menuRepo.List(ctx, householdID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.visibleRecipes(ctx, householdID)
	if err != nil {
		return nil, err
	}

	menu := make([]models.MenuItemLite, 0, len(items))
	for _, item := range items {
		recipe, ok := recipes[item.RecipeID]
		if !ok {
			continue
		}
		menu = append(menu, models.MenuItemLite{
			Note:     item.Note,
			Date:     item.Date,
			RecipeID: item.RecipeID.String(),
			ImgLink:  recipe.ImgLink,
			Title:    recipe.Title,
		})
	}
	return menu, nil
}

// Add puts a recipe on the menu. An inline recipe payload is saved to the
// caller's collection first; adding a recipe already on the menu is a
// conflict.
func (s *MenuService) Add(ctx context.Context, householdID, userID uuid.UUID, recipeID *uuid.UUID, recipe *models.Recipe, note string, date *time.Time) (uuid.UUID, error) {
	if recipeID == nil {
		if recipe == nil {
			return uuid.Nil, ErrRecipeNotFound
		}
		recipe.ID = uuid.New()
		recipe.AuthorID = userID
		recipe.CreatedAt = s.now()
		recipe.UpdatedAt = recipe.CreatedAt
		if recipe.PermissionsRequired == "" {
			recipe.PermissionsRequired = "household"
		}
		if err := s.recipeRepo.Create(ctx, recipe); err != nil {
			return uuid.Nil, err
		}
		recipeID = &recipe.ID
	}

	existing, err := s.menuRepo.Get(ctx, householdID, *recipeID)
	if err != nil {
		return uuid.Nil, err
	}
	if existing != nil {
		return uuid.Nil, ErrAlreadyOnMenu
	}

	item := &models.MenuItem{
		HouseholdID: householdID,
		RecipeID:    *recipeID,
		Note:        note,
		Date:        date,
		CreatedAt:   s.now(),
	}
	if err := s.menuRepo.Add(ctx, item); err != nil {
		return uuid.Nil, err
	}
	return *recipeID, nil
}

// Recipe returns the full recipe when some household member owns it.
func (s *MenuService) Recipe(ctx context.Context, householdID, recipeID uuid.UUID) (*models.Recipe, error) {
	recipes, err := s.visibleRecipes(ctx, householdID)
	if err != nil {
		return nil, err
	}
	recipe, ok := recipes[recipeID]
	if !ok {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

// Finish takes a cooked recipe off the menu and appends a usage record
// carrying the optional rating.
func (s *MenuService) Finish(ctx context.Context, householdID, recipeID uuid.UUID, rating *float64) error {
	if err := s.menuRepo.Remove(ctx, householdID, recipeID); err != nil {
		return err
	}

	recipe, err := s.Recipe(ctx, householdID, recipeID)
	if err != nil {
		return err
	}

	record := &models.RecipeRecord{
		RecipeID:    recipe.ID,
		HouseholdID: householdID,
		Timestamp:   s.now().UTC(),
		Rating:      rating,
	}
	if err := s.recipeRepo.AddRecord(ctx, record); err != nil {
		return err
	}

	s.logger.Info("Recipe finished",
		zap.String("household_id", householdID.String()),
		zap.String("recipe_id", recipeID.String()),
		zap.Bool("rated", rating != nil),
	)
	return nil
}

func (s *MenuService) Remove(ctx context.Context, householdID, recipeID uuid.UUID) error {
	return s.menuRepo.Remove(ctx, householdID, recipeID)
}

// Update rewrites a menu entry's note and date.
func (s *MenuService) Update(ctx context.Context, householdID, recipeID uuid.UUID, note string, date *time.Time) error {
	existing, err := s.menuRepo.Get(ctx, householdID, recipeID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRecipeNotFound
	}

	existing.Note = note
	existing.Date = date
	return s.menuRepo.Update(ctx, existing)
}

func (s *MenuService) visibleRecipes(ctx context.Context, householdID uuid.UUID) (map[uuid.UUID]*models.Recipe, error) {
	household, err := s.householdRepo.GetByID(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return map[uuid.UUID]*models.Recipe{}, nil
	}

	recipes, err := s.recipeRepo.ListByAuthors(ctx, household.UserIDs())
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.Recipe, len(recipes))
	for _, recipe := range recipes {
		byID[recipe.ID] = recipe
	}
	return byID, nil
}
