package routes

import (
	"app/handlers"
	"app/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Bootstrap
	api.Post("/init", handlers.HandleInitializeAdmin)

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/register", handlers.HandleRegister)
	auth.Post("/login", handlers.HandleLogin)

	// --- Product Routes ---
	products := api.Group("/products", middleware.JWTMiddleware)
	products.Get("/", handlers.HandleListProducts)
	products.Get("/search", handlers.HandleSearchProducts)      // Must be before /:productId
	products.Get("/related", handlers.HandleGetRelatedProducts) // Must be before /:productId
	products.Get("/:productId", handlers.HandleGetProduct)
	products.Post("/", middleware.AdminRequired, handlers.HandleCreateProduct)
	products.Put("/:productId", middleware.AdminRequired, handlers.HandleUpdateProduct)
	products.Delete("/:productId", middleware.AdminRequired, handlers.HandleDeleteProduct)

	// --- Order Routes ---
	orders := api.Group("/orders", middleware.JWTMiddleware)
	orders.Post("/add", handlers.HandleAddOrder)
	orders.Get("/", handlers.HandleGetOrders)
	orders.Put("/:orderId/approve", middleware.AdminRequired, handlers.HandleApproveOrder)
	orders.Put("/:orderId/reject", middleware.AdminRequired, handlers.HandleRejectOrder)
	orders.Put("/:orderId/cancel", handlers.HandleCancelOrder)

	// --- Dashboard ---
	api.Get("/dashboard", middleware.JWTMiddleware, handlers.HandleGetDashboard)
	dashboard := api.Group("/dashboard", middleware.JWTMiddleware, middleware.AdminRequired)
	dashboard.Get("/summary", handlers.HandleGetInventorySummary)
	dashboard.Get("/alerts", handlers.HandleGetHighDemandAlerts)

	// --- Prediction Routes (admin only) ---
	predictions := api.Group("/predictions", middleware.JWTMiddleware, middleware.AdminRequired)
	predictions.Post("/compute-all", handlers.HandleComputeAllPredictions) // Must be before /:productId
	predictions.Post("/:productId", handlers.HandleComputePrediction)
	predictions.Get("/:productId", handlers.HandleGetPrediction)

	// --- Chatbot ---
	chatbot := api.Group("/chatbot", middleware.JWTMiddleware)
	chatbot.Post("/message", handlers.HandleChatbotMessage)
	chatbot.Get("/demand/top", handlers.HandleGetTopDemandedProducts) // Must be before /demand/:productId
	chatbot.Get("/demand/:productId", handlers.HandleGetProductDemand)
}
