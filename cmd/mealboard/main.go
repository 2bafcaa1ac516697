package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mealboard/internal/api"
	"mealboard/internal/api/handlers"
	"mealboard/internal/repository"
	"mealboard/internal/scraper"
	"mealboard/internal/service"
	"mealboard/pkg/auth"
	"mealboard/pkg/config"
	"mealboard/pkg/logger"
	"mealboard/pkg/postgres"

	"go.uber.org/zap"
)

// @title Mealboard API
// @version 1.0
// @description Household meal planning backend with a ranked recipe feed
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@mealboard.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Mealboard service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	recipeRepo := repository.NewRecipeRepository(db, appLogger)
	householdRepo := repository.NewHouseholdRepository(db, appLogger)
	menuRepo := repository.NewMenuRepository(db, appLogger)
	shoppingRepo := repository.NewShoppingRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Catalog scraper doubles as the external feed source and the
	// recipe importer.
	catalog := scraper.NewClient(&cfg.Catalog, appLogger)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	householdService := service.NewHouseholdService(householdRepo, userRepo, recipeRepo, appLogger)
	feedService := service.NewFeedService(householdRepo, recipeRepo, menuRepo, catalog, appLogger)
	recipeService := service.NewRecipeService(recipeRepo, catalog, appLogger)
	menuService := service.NewMenuService(menuRepo, householdRepo, recipeRepo, appLogger)
	shoppingService := service.NewShoppingService(shoppingRepo, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	feedHandler := handlers.NewFeedHandler(feedService, recipeService, appLogger)
	householdHandler := handlers.NewHouseholdHandler(householdService, appLogger)
	menuHandler := handlers.NewMenuHandler(menuService, appLogger)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService, appLogger)

	// Setup router
	app := api.SetupRouter(
		authHandler,
		feedHandler,
		householdHandler,
		menuHandler,
		shoppingHandler,
		jwtManager,
		householdService,
		appLogger,
	)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
