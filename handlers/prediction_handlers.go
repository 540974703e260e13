package handlers

import (
	"errors"
	"log"

	"app/forecast"

	"github.com/gofiber/fiber/v2"
)

// Predictions is the shared prediction service, wired at startup.
var Predictions *forecast.Service

// SetPredictionService installs the service used by the prediction handlers.
func SetPredictionService(s *forecast.Service) {
	Predictions = s
}

// HandleComputePrediction computes and stores a prediction for one product.
// POST /api/predictions/:productId
func HandleComputePrediction(c *fiber.Ctx) error {
	productID := c.Params("productId")

	record, err := Predictions.ComputePrediction(c.Context(), productID)
	if err != nil {
		if errors.Is(err, forecast.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		if errors.Is(err, forecast.ErrInsufficientHistory) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Insufficient historical data for prediction. Minimum 7 days required.",
			})
		}
		log.Printf("Error computing prediction for %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error computing prediction"})
	}

	return c.JSON(fiber.Map{"success": true, "prediction": record})
}

// HandleGetPrediction returns the stored prediction for one product.
// GET /api/predictions/:productId
func HandleGetPrediction(c *fiber.Ctx) error {
	productID := c.Params("productId")

	record, err := Predictions.GetPrediction(c.Context(), productID)
	if err != nil {
		if errors.Is(err, forecast.ErrPredictionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "No prediction found for this product"})
		}
		log.Printf("Error retrieving prediction for %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error retrieving prediction"})
	}

	return c.JSON(fiber.Map{"success": true, "prediction": record})
}

// HandleComputeAllPredictions sweeps the whole catalog and reports a summary.
// POST /api/predictions/compute-all
func HandleComputeAllPredictions(c *fiber.Ctx) error {
	summary, err := Predictions.ComputeAll(c.Context())
	if err != nil {
		log.Printf("Error computing all predictions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error computing predictions for all products"})
	}

	return c.JSON(fiber.Map{"success": true, "summary": summary})
}
