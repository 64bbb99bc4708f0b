package config

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"recipe-book/internal/api/handlers"
	"recipe-book/internal/api/routes"
	"recipe-book/internal/logging"
	"recipe-book/internal/middleware"
	"recipe-book/internal/utils"
	"recipe-book/internal/utils/mailing"
	"recipe-book/internal/utils/sessionstore"
	"recipe-book/internal/utils/storage"
	"recipe-book/pkg/favorite"
	"recipe-book/pkg/image"
	"recipe-book/pkg/ingredient"
	"recipe-book/pkg/jwt"
	"recipe-book/pkg/recipe"
	"recipe-book/pkg/user"
)

const sessionExpiration = 14 * 24 * time.Hour

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:   "recipe-book",
		BodyLimit: 10 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ALLOW_ORIGINS"))
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, err
	}
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	mediaRoot := utils.GetConfig("MEDIA_ROOT")
	fileStorage, err := newFileStorage(mediaRoot)
	if err != nil {
		return nil, err
	}
	app.Static("/media", mediaRoot)

	sessionStore, err := newSessionStore(app)
	if err != nil {
		return nil, err
	}

	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	// Repository
	userRepository := user.NewUserRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db, ingredientRepository)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	userService := user.NewUserService(userRepository, jwtService, mailer, utils.GetConfig("APP_URL"))
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, utils.GetConfigInt("PAGE_SIZE", 10))
	imageService := image.NewImageService(fileStorage)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	favoriteHandler := handlers.NewFavoriteHandler(recipeService, sessionStore, favorite.NewSessionLocker(), utils.GetConfig("SESSION_COOKIE"))
	imageHandler := handlers.NewImageHandler(imageService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		RecipeHandler:     recipeHandler,
		IngredientHandler: ingredientHandler,
		FavoriteHandler:   favoriteHandler,
		ImageHandler:      imageHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
		MetricsHandler:    adaptor.HTTPHandler(promhttp.Handler()),
	}
	routesConfig.Setup()
	return app, nil
}

// newFileStorage picks S3 when a bucket is configured and the media root otherwise.
func newFileStorage(mediaRoot string) (storage.FileStorage, error) {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	if bucket == "" {
		logging.Info().Str("media_root", mediaRoot).Msg("storing images on local disk")
		return storage.NewLocalStorage(mediaRoot), nil
	}

	logging.Info().Str("bucket", bucket).Msg("storing images in s3")
	return storage.NewAwsS3(context.Background(), storage.S3Config{
		Bucket:    bucket,
		Region:    utils.GetConfig("AWS_S3_REGION"),
		AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
		SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
	})
}

// newSessionStore keeps sessions in redis when REDIS_HOST is set, in memory otherwise.
func newSessionStore(app *fiber.App) (*session.Store, error) {
	cfg := session.Config{
		Expiration:     sessionExpiration,
		KeyLookup:      "cookie:" + utils.GetConfig("SESSION_COOKIE"),
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}

	if host := utils.GetConfig("REDIS_HOST"); host != "" {
		redisStorage, err := sessionstore.NewRedisStorage(sessionstore.RedisConfig{
			Host:     host,
			Port:     utils.GetConfig("REDIS_PORT"),
			Password: utils.GetConfig("REDIS_PASSWORD"),
		})
		if err != nil {
			return nil, err
		}
		cfg.Storage = redisStorage
		app.Hooks().OnShutdown(redisStorage.Close)
	}

	store := session.New(cfg)
	store.RegisterType([]uint{})
	return store, nil
}
