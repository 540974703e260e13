package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"

	"app/database"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// bumpDemand adds amount to each product's demand counter. Demand tracking
// is advisory, so failures are logged and never fail the calling request.
func bumpDemand(ctx context.Context, productIDs []string, amount int) {
	if len(productIDs) == 0 {
		return
	}
	_, err := database.GetDB().Exec(ctx,
		"UPDATE products SET demand_count = demand_count + $1, last_demand_update = NOW() WHERE id = ANY($2)",
		amount, productIDs)
	if err != nil {
		log.Printf("Error bumping demand for %v: %v", productIDs, err)
	}
}

// topDemandedProducts returns the most demanded active products.
func topDemandedProducts(ctx context.Context, limit int) ([]models.ProductDemand, error) {
	rows, err := database.GetDB().Query(ctx, `
		SELECT p.id, p.name, p.demand_count, p.last_demand_update, p.stock, p.price, c.category_name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.is_deleted = false
		ORDER BY p.demand_count DESC, p.name
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	demands := make([]models.ProductDemand, 0)
	for rows.Next() {
		var d models.ProductDemand
		if err := rows.Scan(&d.ID, &d.Name, &d.DemandCount, &d.LastDemandUpdate, &d.Stock, &d.Price, &d.Category); err != nil {
			return nil, err
		}
		demands = append(demands, d)
	}
	return demands, rows.Err()
}

// HandleGetTopDemandedProducts lists the most demanded products.
// GET /api/chatbot/demand/top?limit=5
func HandleGetTopDemandedProducts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	if limit <= 0 || limit > 50 {
		limit = 5
	}

	demands, err := topDemandedProducts(c.Context(), limit)
	if err != nil {
		log.Printf("Error listing top demanded products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve demand data"})
	}

	return c.JSON(fiber.Map{"success": true, "products": demands})
}

// HandleGetProductDemand returns the demand counter for one product.
// GET /api/chatbot/demand/:productId
func HandleGetProductDemand(c *fiber.Ctx) error {
	productID := c.Params("productId")

	var d models.ProductDemand
	err := database.GetDB().QueryRow(c.Context(), `
		SELECT p.id, p.name, p.demand_count, p.last_demand_update, p.stock, p.price, c.category_name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, productID).Scan(&d.ID, &d.Name, &d.DemandCount, &d.LastDemandUpdate, &d.Stock, &d.Price, &d.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		log.Printf("Error fetching demand for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve demand data"})
	}

	return c.JSON(fiber.Map{"success": true, "demand": d})
}
