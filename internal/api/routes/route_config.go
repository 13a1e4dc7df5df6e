package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pantry-guardian/backend/internal/api/handlers"
	"github.com/pantry-guardian/backend/internal/middleware"
	"github.com/pantry-guardian/backend/pkg/jwt"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	HouseholdHandler    handlers.HouseholdHandler
	ProductHandler      handlers.ProductHandler
	BarcodeHandler      handlers.BarcodeHandler
	RecipeHandler       handlers.RecipeHandler
	NotificationHandler handlers.NotificationHandler
	ShoppingListHandler handlers.ShoppingListHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Households()
	c.Products()
	c.Barcodes()
	c.Recipes()
	c.Notifications()
	c.ShoppingList()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/push-token", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.SavePushToken)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Households() {
	households := c.App.Group("/api/v1/households", c.Middleware.AuthMiddleware(c.JWTService))

	households.Get("", c.HouseholdHandler.GetHouseholds)
	households.Post("", c.HouseholdHandler.CreateHousehold)
	households.Get("/:id", c.HouseholdHandler.GetHousehold)
	households.Put("/:id", c.HouseholdHandler.UpdateHousehold)
	households.Delete("/:id", c.HouseholdHandler.DeleteHousehold)
	households.Post("/:id/participants", c.HouseholdHandler.AddParticipant)

	invitations := c.App.Group("/api/v1/invitations", c.Middleware.AuthMiddleware(c.JWTService))
	invitations.Get("", c.HouseholdHandler.GetPendingInvitations)
	invitations.Post("", c.HouseholdHandler.CreateInvitation)
	invitations.Post("/:id/accept", c.HouseholdHandler.AcceptInvitation)
	invitations.Post("/:id/reject", c.HouseholdHandler.RejectInvitation)
}

func (c *Config) Products() {
	products := c.App.Group("/api/v1/products", c.Middleware.AuthMiddleware(c.JWTService))

	products.Get("", c.ProductHandler.GetProducts)
	products.Post("", c.ProductHandler.AddProduct)
	products.Put("/:id", c.ProductHandler.UpdateProduct)
	products.Delete("/:id", c.ProductHandler.DeleteProduct)
	products.Post("/:id/waste", c.ProductHandler.MarkAsWasted)
	products.Post("/image", c.ProductHandler.UploadProductImage)
}

func (c *Config) Barcodes() {
	barcodes := c.App.Group("/api/v1/barcodes", c.Middleware.AuthMiddleware(c.JWTService))

	barcodes.Get("/:code", c.BarcodeHandler.GetProductName)
	barcodes.Post("", c.BarcodeHandler.AddBarcode)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Post("/generate", c.RecipeHandler.GenerateRecipe)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))

	notifications.Get("/settings", c.NotificationHandler.GetSettings)
	notifications.Put("/settings", c.NotificationHandler.SaveSettings)
}

func (c *Config) ShoppingList() {
	shoppingList := c.App.Group("/api/v1/shopping-list", c.Middleware.AuthMiddleware(c.JWTService))

	shoppingList.Get("", c.ShoppingListHandler.GetShoppingList)
	shoppingList.Post("", c.ShoppingListHandler.AddItem)
	shoppingList.Put("/:id", c.ShoppingListHandler.UpdateItem)
	shoppingList.Post("/:id/complete", c.ShoppingListHandler.CompleteItem)
	shoppingList.Delete("/:id", c.ShoppingListHandler.DeleteItem)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
