package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"store-service/controller"
	"store-service/middleware"
	"store-service/service"
)

type Services struct {
	Users    *service.UserService
	Sessions *service.SessionManager
	Catalog  *service.Catalog
	Orders   *service.OrderService

	LowStockThreshold int
	SecureCookies     bool
}

// NewApp builds the fiber app with the shared middleware stack.
func NewApp(corsOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "store-service",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Content-Type",
	}))

	return app
}

func RegisterStoreRoutes(app *fiber.App, svc Services, authMiddleware fiber.Handler) {
	ac := controller.NewAuthController(svc.Users, svc.Sessions, svc.SecureCookies)
	pc := controller.NewProductController(svc.Catalog, svc.LowStockThreshold)
	oc := controller.NewOrderController(svc.Orders)

	// auth
	app.Post("/register", ac.Register)
	app.Post("/login", ac.Login)
	app.Get("/logout", authMiddleware, ac.Logout)

	// catalog
	app.Get("/products", pc.ListProducts)
	app.Get("/product/:id", pc.GetProduct)
	app.Get("/inventory_report", pc.InventoryReport)

	// orders
	app.Post("/order", authMiddleware, oc.CreateOrder)
	app.Get("/orders", authMiddleware, oc.ListOrders)
	app.Post("/process_bulk_orders", authMiddleware, oc.ProcessBulkOrders)
}
