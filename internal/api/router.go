package api

import (
	"mealboard/docs"
	"mealboard/internal/api/handlers"
	"mealboard/pkg/auth"
	"mealboard/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	feedHandler *handlers.FeedHandler,
	householdHandler *handlers.HouseholdHandler,
	menuHandler *handlers.MenuHandler,
	shoppingHandler *handlers.ShoppingHandler,
	jwtManager *auth.JWTManager,
	resolver middleware.HouseholdResolver,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // ensure docs package is imported and init() is called
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	user := app.Group("/user")
	authGroup := user.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes. Every handler below needs both the caller's
	// identity and their household, auto-provisioned on first use.
	protected := app.Group("/api/v1",
		middleware.AuthMiddleware(jwtManager, appLogger),
		middleware.HouseholdMiddleware(resolver, appLogger),
	)

	protected.Get("/users/me", authHandler.Me)

	feed := protected.Group("/feed")
	feed.Get("", feedHandler.GetFeed)
	feed.Get("/search", feedHandler.Search)

	recipes := protected.Group("/recipes")
	recipes.Post("", feedHandler.AddRecipe)
	recipes.Post("/import", feedHandler.ImportRecipe)
	recipes.Put("/:id", feedHandler.UpdateRecipe)

	household := protected.Group("/household")
	household.Get("", householdHandler.GetHousehold)
	household.Post("", householdHandler.CreateHousehold)
	household.Get("/code", householdHandler.GetJoinCode)
	household.Post("/join", householdHandler.Join)
	household.Delete("/members/:user_id", householdHandler.Kick)

	menu := protected.Group("/menu")
	menu.Get("", menuHandler.GetMenu)
	menu.Post("", menuHandler.AddMenuItem)
	menu.Get("/recipes/:recipe_id", menuHandler.GetMenuRecipe)
	menu.Post("/finish", menuHandler.FinishMenuItem)
	menu.Put("/:recipe_id", menuHandler.UpdateMenuItem)
	menu.Delete("/:recipe_id", menuHandler.RemoveMenuItem)

	shopping := protected.Group("/shopping-list")
	shopping.Get("", shoppingHandler.GetList)
	shopping.Post("", shoppingHandler.AddItem)
	shopping.Post("/:id/check", shoppingHandler.CheckItem)
	shopping.Put("/:id", shoppingHandler.EditItem)
	shopping.Delete("/:id", shoppingHandler.RemoveItem)

	return app
}
