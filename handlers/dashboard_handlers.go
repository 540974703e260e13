package handlers

import (
	"errors"
	"log"

	"app/database"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// HandleGetDashboard returns the admin overview: totals, today's orders,
// revenue, out-of-stock and low-stock products, and the best seller.
// GET /api/dashboard
func HandleGetDashboard(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	var summary models.DashboardSummary

	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE is_deleted = false").Scan(&summary.TotalProducts); err != nil {
		log.Printf("Error counting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error in Fetching dashboard Summary"})
	}

	if err := db.QueryRow(ctx, "SELECT COALESCE(SUM(stock), 0) FROM products WHERE is_deleted = false").Scan(&summary.TotalStock); err != nil {
		log.Printf("Error summing stock: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error in Fetching dashboard Summary"})
	}

	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE DATE(order_date) = CURRENT_DATE").Scan(&summary.OrdersToday); err != nil {
		log.Printf("Error counting today's orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error in Fetching dashboard Summary"})
	}

	if err := db.QueryRow(ctx, "SELECT COALESCE(SUM(total_price), 0) FROM orders").Scan(&summary.Revenue); err != nil {
		log.Printf("Error summing revenue: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error in Fetching dashboard Summary"})
	}

	outOfStock, err := queryStockList(c, "p.stock = 0")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error in Fetching dashboard Summary"})
	}
	summary.OutOfStock = outOfStock

	lowStock, err := queryStockList(c, "p.stock > 0 AND p.stock < 5")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error in Fetching dashboard Summary"})
	}
	summary.LowStock = lowStock

	var top models.TopSale
	err = db.QueryRow(ctx, `
		SELECT p.name, SUM(o.quantity) AS total_quantity
		FROM orders o
		JOIN products p ON p.id = o.product_id
		GROUP BY p.name
		ORDER BY total_quantity DESC
		LIMIT 1
	`).Scan(&top.Name, &top.TotalQuantity)
	switch {
	case err == nil:
		summary.HighestSaleProduct = &top
	case errors.Is(err, pgx.ErrNoRows):
		// No orders yet; leave the field empty.
	default:
		log.Printf("Error fetching top seller: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error in Fetching dashboard Summary"})
	}

	return c.JSON(fiber.Map{"success": true, "dashboardData": summary})
}

// HandleGetInventorySummary returns catalog-wide counts for the inventory
// overview widgets.
// GET /api/dashboard/summary (admin)
func HandleGetInventorySummary(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	var summary struct {
		TotalProducts   int `json:"totalProducts"`
		TotalStock      int `json:"totalStock"`
		TotalCategories int `json:"totalCategories"`
		TotalSuppliers  int `json:"totalSuppliers"`
	}

	err := db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(stock), 0)
		FROM products
		WHERE is_deleted = false
	`).Scan(&summary.TotalProducts, &summary.TotalStock)
	if err != nil {
		log.Printf("Error summarizing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve inventory summary"})
	}

	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM categories").Scan(&summary.TotalCategories); err != nil {
		log.Printf("Error counting categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve inventory summary"})
	}
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM suppliers").Scan(&summary.TotalSuppliers); err != nil {
		log.Printf("Error counting suppliers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve inventory summary"})
	}

	return c.JSON(fiber.Map{"success": true, "summary": summary})
}

// HandleGetHighDemandAlerts lists products whose predicted demand exceeds
// current stock, most urgent shortfall first.
// GET /api/dashboard/alerts (admin)
func HandleGetHighDemandAlerts(c *fiber.Ctx) error {
	rows, err := database.GetDB().Query(c.Context(), `
		SELECT pr.product_id, p.name, pr.predicted_total, p.stock, pr.recommended_reorder,
		       pr.predicted_total - p.stock AS urgency
		FROM predictions pr
		JOIN products p ON p.id = pr.product_id
		WHERE p.is_deleted = false AND pr.predicted_total > p.stock
		ORDER BY urgency DESC
	`)
	if err != nil {
		log.Printf("Error querying demand alerts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve demand alerts"})
	}
	defer rows.Close()

	alerts := make([]models.DemandAlert, 0)
	for rows.Next() {
		var a models.DemandAlert
		if err := rows.Scan(&a.ProductID, &a.ProductName, &a.PredictedDemand, &a.CurrentStock, &a.RecommendedReorder, &a.Urgency); err != nil {
			log.Printf("Error scanning demand alert: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve demand alerts"})
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error reading demand alerts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve demand alerts"})
	}

	return c.JSON(fiber.Map{"success": true, "alerts": alerts})
}

func queryStockList(c *fiber.Ctx, condition string) ([]models.Product, error) {
	query := `
		SELECT p.id, p.name, p.stock, c.category_name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.is_deleted = false AND ` + condition + `
		ORDER BY p.stock, p.name
	`
	rows, err := database.GetDB().Query(c.Context(), query)
	if err != nil {
		log.Printf("Error querying stock list (%s): %v", condition, err)
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock, &p.CategoryName); err != nil {
			log.Printf("Error scanning stock list row: %v", err)
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
