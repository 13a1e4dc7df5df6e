package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/pantry-guardian/backend/internal/api/handlers"
	"github.com/pantry-guardian/backend/internal/api/routes"
	"github.com/pantry-guardian/backend/internal/middleware"
	"github.com/pantry-guardian/backend/internal/utils"
	"github.com/pantry-guardian/backend/internal/utils/storage"
	"github.com/pantry-guardian/backend/pkg/barcode"
	"github.com/pantry-guardian/backend/pkg/household"
	"github.com/pantry-guardian/backend/pkg/jwt"
	"github.com/pantry-guardian/backend/pkg/notification"
	"github.com/pantry-guardian/backend/pkg/product"
	"github.com/pantry-guardian/backend/pkg/recipe"
	"github.com/pantry-guardian/backend/pkg/shoppinglist"
	"github.com/pantry-guardian/backend/pkg/user"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	openFoodFacts := barcode.NewOpenFoodFactsClient()
	openAI := recipe.NewOpenAIClient()
	pusher := notification.NewExpoPusher()

	// Repository
	userRepository := user.NewUserRepository(db)
	householdRepository := household.NewHouseholdRepository(db)
	productRepository := product.NewProductRepository(db)
	barcodeRepository := barcode.NewBarcodeRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)
	shoppingListRepository := shoppinglist.NewShoppingListRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	householdService := household.NewHouseholdService(householdRepository, userRepository)
	userService := user.NewUserService(userRepository, householdService, jwtService, s3)
	notificationService := notification.NewNotificationService(notificationRepository, pusher)
	productService := product.NewProductService(productRepository, householdService, s3, notificationService)
	barcodeService := barcode.NewBarcodeService(barcodeRepository, householdService, openFoodFacts)
	recipeService := recipe.NewRecipeService(productRepository, householdService, openAI)
	shoppingListService := shoppinglist.NewShoppingListService(shoppingListRepository, householdService)

	if err := notificationService.StartReminderSweep(); err != nil {
		log.Fatalf("error starting reminder sweep: %v", err)
	}

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	householdHandler := handlers.NewHouseholdHandler(householdService, validator)
	productHandler := handlers.NewProductHandler(productService, validator)
	barcodeHandler := handlers.NewBarcodeHandler(barcodeService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService, validator)
	shoppingListHandler := handlers.NewShoppingListHandler(shoppingListService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		HouseholdHandler:    householdHandler,
		ProductHandler:      productHandler,
		BarcodeHandler:      barcodeHandler,
		RecipeHandler:       recipeHandler,
		NotificationHandler: notificationHandler,
		ShoppingListHandler: shoppingListHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
