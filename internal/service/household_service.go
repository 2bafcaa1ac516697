package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"mealboard/internal/models"
	"mealboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrHouseholdNotFound = errors.New("household not found")
	ErrInvalidJoinCode   = errors.New("invalid join code")
)

const (
	joinCodeLength = 6
	joinCodeTTL    = time.Hour
)

const joinCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

type HouseholdService struct {
	householdRepo *repository.HouseholdRepository
	userRepo      *repository.UserRepository
	recipeRepo    *repository.RecipeRepository
	logger        *zap.Logger

	now func() time.Time
}

func NewHouseholdService(
	householdRepo *repository.HouseholdRepository,
	userRepo *repository.UserRepository,
	recipeRepo *repository.RecipeRepository,
	logger *zap.Logger,
) *HouseholdService {
	return &HouseholdService{
		householdRepo: householdRepo,
		userRepo:      userRepo,
		recipeRepo:    recipeRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// ResolveForUser finds the user's household, creating one when none
// exists. Every user always ends up in exactly one household.
func (s *HouseholdService) ResolveForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	household, err := s.householdRepo.FindByUser(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if household != nil {
		return household.ID, nil
	}

	created, err := s.Create(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

func (s *HouseholdService) Create(ctx context.Context, ownerID uuid.UUID) (*models.Household, error) {
	now := s.now()
	household := &models.Household{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.householdRepo.Create(ctx, household); err != nil {
		return nil, err
	}

	s.logger.Info("Household created",
		zap.String("household_id", household.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return household, nil
}

// CreateForUser starts a brand-new household owned by the user, leaving
// their current household first so they only ever resolve to one.
func (s *HouseholdService) CreateForUser(ctx context.Context, userID uuid.UUID) (*models.Household, error) {
	previous, err := s.householdRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if previous != nil {
		if err := s.Kick(ctx, previous.ID, userID); err != nil {
			return nil, err
		}
	}
	return s.Create(ctx, userID)
}

// Members lists the household's users with their recipe collections
// summarized to a count.
func (s *HouseholdService) Members(ctx context.Context, householdID uuid.UUID) ([]models.UserLite, error) {
	household, err := s.householdRepo.GetByID(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, ErrHouseholdNotFound
	}

	users, err := s.userRepo.ListByIDs(ctx, household.UserIDs())
	if err != nil {
		return nil, err
	}

	members := make([]models.UserLite, 0, len(users))
	for _, user := range users {
		count, err := s.recipeRepo.CountByAuthor(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		members = append(members, models.MakeUserLite(user, count))
	}
	return members, nil
}

// JoinCode returns the household's current join code, minting a new one
// when the code is missing or expired.
func (s *HouseholdService) JoinCode(ctx context.Context, householdID uuid.UUID) (string, error) {
	household, err := s.householdRepo.GetByID(ctx, householdID)
	if err != nil {
		return "", err
	}
	if household == nil {
		return "", ErrHouseholdNotFound
	}

	now := s.now()
	if household.JoinCode != nil && household.JoinCodeExpiresAt != nil && household.JoinCodeExpiresAt.After(now) {
		return *household.JoinCode, nil
	}

	code := randomJoinCode()
	expiresAt := now.Add(joinCodeTTL)
	if err := s.householdRepo.UpdateJoinCode(ctx, householdID, &code, &expiresAt); err != nil {
		return "", err
	}
	return code, nil
}

// Join moves a user into the household matching the code. A user already
// in another household is pulled out of it first; leaving the previous
// household empty deletes it.
func (s *HouseholdService) Join(ctx context.Context, userID uuid.UUID, code string) (uuid.UUID, error) {
	household, err := s.householdRepo.GetByJoinCode(ctx, code)
	if err != nil {
		return uuid.Nil, err
	}
	if household == nil || household.JoinCodeExpiresAt == nil || household.JoinCodeExpiresAt.Before(s.now()) {
		return uuid.Nil, ErrInvalidJoinCode
	}

	previous, err := s.householdRepo.FindByUser(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if previous != nil {
		if previous.ID == household.ID {
			return household.ID, nil
		}
		if err := s.Kick(ctx, previous.ID, userID); err != nil {
			return uuid.Nil, err
		}
	}

	if err := s.householdRepo.AddMember(ctx, household.ID, userID); err != nil {
		return uuid.Nil, err
	}

	s.logger.Info("User joined household",
		zap.String("household_id", household.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return household.ID, nil
}

// Kick removes a user from the household and deletes the household when
// nobody is left in it.
func (s *HouseholdService) Kick(ctx context.Context, householdID, userID uuid.UUID) error {
	if err := s.householdRepo.RemoveMember(ctx, householdID, userID); err != nil {
		return err
	}

	household, err := s.householdRepo.GetByID(ctx, householdID)
	if err != nil {
		return err
	}
	if household == nil {
		return nil
	}

	if household.OwnerID == userID {
		if len(household.Members) == 0 {
			s.logger.Info("Deleting empty household", zap.String("household_id", householdID.String()))
			return s.householdRepo.Delete(ctx, householdID)
		}
		// Hand ownership to a remaining member so the departed owner
		// no longer resolves to this household.
		newOwner := household.Members[0]
		if err := s.householdRepo.UpdateOwner(ctx, householdID, newOwner); err != nil {
			return err
		}
		return s.householdRepo.RemoveMember(ctx, householdID, newOwner)
	}
	return nil
}

func randomJoinCode() string {
	code := make([]byte, joinCodeLength)
	for i := range code {
		code[i] = joinCodeAlphabet[rand.Intn(len(joinCodeAlphabet))]
	}
	return string(code)
}
