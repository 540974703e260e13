package main

import (
	"context"
	"log"

	"app/config"
	"app/database"
	"app/forecast"
	"app/handlers"
	"app/routes"
	"app/scheduler"
	"app/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	if err := config.Load(); err != nil {
		log.Fatal(err)
	}

	// Initialize database
	database.Connect(config.AppConfig.DatabaseURL)
	defer database.Close()

	// Wire the prediction pipeline over the database
	db := database.GetDB()
	predictions := forecast.NewService(
		store.NewProducts(db),
		store.NewOrders(db),
		store.NewPredictions(db),
		config.AppConfig.Forecast,
	)
	handlers.SetPredictionService(predictions)

	// Start the daily prediction sweep
	sched := scheduler.New(predictions, config.AppConfig.ScheduleHour, config.AppConfig.ScheduleMinute)
	sched.Start(context.Background())

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
