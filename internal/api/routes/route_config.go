package routes

import (
	"github.com/gofiber/fiber/v2"

	"recipe-book/internal/api/handlers"
	"recipe-book/internal/middleware"
	"recipe-book/pkg/jwt"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	IngredientHandler handlers.IngredientHandler
	FavoriteHandler   handlers.FavoriteHandler
	ImageHandler      handlers.ImageHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
	MetricsHandler    fiber.Handler
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.MetricsMiddleware())
	c.GuestRoute()
	c.User()
	c.Recipes()
	c.Ingredients()
	c.Favorites()
	c.Images()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	if c.MetricsHandler != nil {
		c.App.Get("/metrics", c.MetricsHandler)
	}
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/v1/recipes")
	{
		recipes.Get("", c.RecipeHandler.GetRecipes)
		recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
		recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
		recipes.Put("/:id", auth, c.RecipeHandler.ReplaceRecipe)
		recipes.Patch("/:id", auth, c.RecipeHandler.PatchRecipe)
		recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

		// favorites live in the visitor's session, no login needed
		recipes.Post("/:id/favorite", c.FavoriteHandler.AddFavorite)
		recipes.Delete("/:id/favorite", c.FavoriteHandler.RemoveFavorite)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients")
	{
		ingredients.Get("", c.IngredientHandler.GetIngredients)
		ingredients.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.IngredientHandler.CreateIngredient)
	}
}

func (c *Config) Favorites() {
	c.App.Get("/api/v1/favorites", c.FavoriteHandler.GetFavorites)
}

func (c *Config) Images() {
	images := c.App.Group("/api/v1/images", c.Middleware.AuthMiddleware(c.JWTService))
	images.Post("/", c.ImageHandler.UploadImage)
	images.Delete("/:name", c.ImageHandler.DeleteImage)
}
