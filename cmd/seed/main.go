package main

import (
	"context"
	"log"
	"time"

	"mealboard/internal/models"
	"mealboard/internal/repository"
	"mealboard/pkg/auth"
	"mealboard/pkg/config"
	"mealboard/pkg/logger"
	"mealboard/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeds a demo household with two users, a handful of recipes, and enough
// cooking history to make the feed ranking visible on first run.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	householdRepo := repository.NewHouseholdRepository(db, appLogger)
	recipeRepo := repository.NewRecipeRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	now := time.Now()

	alice, err := seedUser(ctx, userRepo, "alice", "alice@example.com", "password123", now)
	if err != nil {
		appLogger.Fatal("Failed to seed user", zap.Error(err))
	}
	bob, err := seedUser(ctx, userRepo, "bob", "bob@example.com", "password123", now)
	if err != nil {
		appLogger.Fatal("Failed to seed user", zap.Error(err))
	}

	household, err := householdRepo.FindByUser(ctx, alice.ID)
	if err != nil {
		appLogger.Fatal("Failed to look up household", zap.Error(err))
	}
	if household == nil {
		household = &models.Household{
			ID:        uuid.New(),
			OwnerID:   alice.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := householdRepo.Create(ctx, household); err != nil {
			appLogger.Fatal("Failed to create household", zap.Error(err))
		}
	}
	if err := householdRepo.AddMember(ctx, household.ID, bob.ID); err != nil {
		appLogger.Fatal("Failed to add household member", zap.Error(err))
	}

	rate := func(v float64) *float64 { return &v }
	recipes := []struct {
		recipe  models.Recipe
		history []*float64
	}{
		{
			recipe: models.Recipe{
				Title:        "Weeknight Chicken Stir Fry",
				Instructions: []string{"Slice the chicken thin.", "Fry with vegetables over high heat.", "Toss with soy and sesame."},
				Ingredients:  []string{"chicken breast", "broccoli", "soy sauce", "sesame oil", "garlic"},
				TimeEstimate: []string{"30 mins", "10 mins", "20 mins"},
				Tags:         []string{"dinner", "quick"},
			},
			history: []*float64{rate(9), rate(8.5)},
		},
		{
			recipe: models.Recipe{
				Title:        "Sunday Tomato Soup",
				Instructions: []string{"Roast the tomatoes.", "Blend with stock and simmer."},
				Ingredients:  []string{"tomatoes", "vegetable stock", "cream", "basil"},
				TimeEstimate: []string{"1 hrs", "15 mins", "45 mins"},
				Tags:         []string{"soup", "vegetarian"},
			},
			history: []*float64{rate(6)},
		},
		{
			recipe: models.Recipe{
				Title:        "Blueberry Pancakes",
				Instructions: []string{"Whisk the batter.", "Fold in berries and fry in butter."},
				Ingredients:  []string{"flour", "milk", "eggs", "blueberries", "butter"},
				TimeEstimate: []string{"25 mins", "10 mins", "15 mins"},
				Tags:         []string{"breakfast"},
			},
			history: nil,
		},
		{
			recipe: models.Recipe{
				Title:        "Overbaked Meatloaf",
				Instructions: []string{"Mix, shape, bake."},
				Ingredients:  []string{"ground beef", "breadcrumbs", "egg", "ketchup"},
				TimeEstimate: []string{"1 hrs 15 mins"},
				Tags:         []string{"dinner"},
			},
			history: []*float64{rate(2), nil},
		},
	}

	for i := range recipes {
		entry := &recipes[i]
		entry.recipe.ID = uuid.New()
		entry.recipe.AuthorID = alice.ID
		entry.recipe.PermissionsRequired = "household"
		entry.recipe.CreatedAt = now
		entry.recipe.UpdatedAt = now
		if err := recipeRepo.Create(ctx, &entry.recipe); err != nil {
			appLogger.Fatal("Failed to seed recipe", zap.String("title", entry.recipe.Title), zap.Error(err))
		}

		// Spread cook dates backwards so cooldowns differ per recipe.
		for j, rating := range entry.history {
			record := &models.RecipeRecord{
				RecipeID:    entry.recipe.ID,
				HouseholdID: household.ID,
				Timestamp:   now.AddDate(0, 0, -21*(j+1)).UTC(),
				Rating:      rating,
			}
			if err := recipeRepo.AddRecord(ctx, record); err != nil {
				appLogger.Fatal("Failed to seed recipe record", zap.Error(err))
			}
		}

		appLogger.Info("Seeded recipe", zap.String("title", entry.recipe.Title))
	}

	appLogger.Info("Seeding complete",
		zap.String("household_id", household.ID.String()),
		zap.Int("recipes", len(recipes)),
	)
}

func seedUser(ctx context.Context, repo *repository.UserRepository, username, email, password string, now time.Time) (*models.User, error) {
	existing, _ := repo.GetByEmail(ctx, email)
	if existing != nil {
		return existing, nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
