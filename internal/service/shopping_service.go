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

var ErrItemNotFound = errors.New("shopping item not found")

// checkedItemTTL is how long a checked-off item stays visible before the
// next list read sweeps it away.
const checkedItemTTL = 12 * time.Hour

type ShoppingService struct {
	shoppingRepo *repository.ShoppingRepository
	logger       *zap.Logger

	now func() time.Time
}

func NewShoppingService(shoppingRepo *repository.ShoppingRepository, logger *zap.Logger) *ShoppingService {
	return &ShoppingService{
		shoppingRepo: shoppingRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// List sweeps expired checked items, then returns the household's list.
func (s *ShoppingService) List(ctx context.Context, householdID uuid.UUID) ([]*models.ShoppingItem, error) {
	cutoff := s.now().Add(-checkedItemTTL)
	if err := s.shoppingRepo.RemoveCheckedBefore(ctx, householdID, cutoff); err != nil {
		return nil, err
	}
	return s.shoppingRepo.List(ctx, householdID)
}

func (s *ShoppingService) Add(ctx context.Context, householdID, userID uuid.UUID, name string, recipeID *uuid.UUID) ([]*models.ShoppingItem, error) {
	item := &models.ShoppingItem{
		ID:          uuid.New(),
		HouseholdID: householdID,
		Name:        name,
		UserID:      userID,
		RecipeID:    recipeID,
		CreatedAt:   s.now(),
	}
	if err := s.shoppingRepo.Add(ctx, item); err != nil {
		return nil, err
	}
	return s.shoppingRepo.List(ctx, householdID)
}

// AddMany wraps a batch of ingredient names, typically everything from one
// recipe, into items owned by the same user.
func (s *ShoppingService) AddMany(ctx context.Context, householdID, userID uuid.UUID, names []string, recipeID *uuid.UUID) error {
	items := make([]*models.ShoppingItem, 0, len(names))
	for _, name := range names {
		items = append(items, &models.ShoppingItem{
			ID:          uuid.New(),
			HouseholdID: householdID,
			Name:        name,
			UserID:      userID,
			RecipeID:    recipeID,
			CreatedAt:   s.now(),
		})
	}
	return s.shoppingRepo.AddBatch(ctx, items)
}

// Check toggles an item's checked state, stamping or clearing the time it
// was checked so List can expire it later.
func (s *ShoppingService) Check(ctx context.Context, householdID, itemID uuid.UUID) ([]*models.ShoppingItem, error) {
	item, err := s.shoppingRepo.Get(ctx, householdID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	item.Checked = !item.Checked
	if item.Checked {
		now := s.now()
		item.TimeChecked = &now
	} else {
		item.TimeChecked = nil
	}

	if err := s.shoppingRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.shoppingRepo.List(ctx, householdID)
}

func (s *ShoppingService) Edit(ctx context.Context, householdID, itemID uuid.UUID, name string) ([]*models.ShoppingItem, error) {
	item, err := s.shoppingRepo.Get(ctx, householdID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	item.Name = name
	if err := s.shoppingRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.shoppingRepo.List(ctx, householdID)
}

func (s *ShoppingService) Remove(ctx context.Context, householdID, itemID uuid.UUID) ([]*models.ShoppingItem, error) {
	if err := s.shoppingRepo.Remove(ctx, householdID, itemID); err != nil {
		return nil, err
	}
	return s.shoppingRepo.List(ctx, householdID)
}
