package handlers

import (
	"errors"
	"log"
	"time"

	"app/database"
	"app/middleware"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// HandleAddOrder places an order, decrementing product stock and bumping
// the product's demand counter in the same transaction.
// POST /api/orders/add
func HandleAddOrder(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var req struct {
		ProductID string  `json:"productId"`
		Quantity  int     `json:"quantity"`
		Total     float64 `json:"total"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if req.ProductID == "" || req.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid order fields"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var stock int
	err = tx.QueryRow(ctx, "SELECT stock FROM products WHERE id = $1 AND is_deleted = false FOR UPDATE", req.ProductID).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		log.Printf("Error locking product %s: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	if req.Quantity > stock {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Not enough stock"})
	}

	if _, err := tx.Exec(ctx, `
		UPDATE products
		SET stock = stock - $1, demand_count = demand_count + $1, last_demand_update = NOW(), updated_at = NOW()
		WHERE id = $2
	`, req.Quantity, req.ProductID); err != nil {
		log.Printf("Error decrementing stock for %s: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update stock"})
	}

	var order models.Order
	query := `
		INSERT INTO orders (customer_id, product_id, quantity, total_price, status, order_date)
		VALUES ($1, $2, $3, $4, 'pending', $5)
		RETURNING id, customer_id, product_id, quantity, total_price, status, order_date
	`
	err = tx.QueryRow(ctx, query, claims.UserID, req.ProductID, req.Quantity, req.Total, time.Now()).Scan(
		&order.ID, &order.CustomerID, &order.ProductID, &order.Quantity, &order.TotalPrice, &order.Status, &order.OrderDate,
	)
	if err != nil {
		log.Printf("Error inserting order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create order"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to commit transaction"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Order added successfully", "order": order})
}

// HandleGetOrders lists orders; customers see only their own.
// GET /api/orders
func HandleGetOrders(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	query := `
		SELECT o.id, o.customer_id, o.product_id, o.quantity, o.total_price, o.status, o.order_date,
		       p.name, u.name
		FROM orders o
		JOIN products p ON p.id = o.product_id
		JOIN users u ON u.id = o.customer_id
	`
	args := []interface{}{}
	if claims.Role == "customer" {
		query += " WHERE o.customer_id = $1"
		args = append(args, claims.UserID)
	}
	query += " ORDER BY o.order_date DESC"

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server Error in fetching Orders"})
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.Status, &o.OrderDate,
			&o.ProductName, &o.CustomerName,
		); err != nil {
			log.Printf("Error scanning order: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to scan order"})
		}
		orders = append(orders, o)
	}

	return c.JSON(fiber.Map{"success": true, "orders": orders})
}

// HandleApproveOrder marks a pending order approved.
// PUT /api/orders/:orderId/approve (admin)
func HandleApproveOrder(c *fiber.Ctx) error {
	return updateOrderStatus(c, "approved")
}

// HandleRejectOrder marks a pending order rejected.
// PUT /api/orders/:orderId/reject (admin)
func HandleRejectOrder(c *fiber.Ctx) error {
	return updateOrderStatus(c, "rejected")
}

// HandleCancelOrder lets a customer cancel their own pending order.
// PUT /api/orders/:orderId/cancel
func HandleCancelOrder(c *fiber.Ctx) error {
	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	orderID := c.Params("orderId")
	var order models.Order
	err = database.GetDB().QueryRow(c.Context(), `
		UPDATE orders SET status = 'cancelled'
		WHERE id = $1 AND customer_id = $2 AND status = 'pending'
		RETURNING id, customer_id, product_id, quantity, total_price, status, order_date
	`, orderID, claims.UserID).Scan(
		&order.ID, &order.CustomerID, &order.ProductID, &order.Quantity, &order.TotalPrice, &order.Status, &order.OrderDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Order not found"})
		}
		log.Printf("Error cancelling order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server Error"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Order cancelled successfully", "order": order})
}

func updateOrderStatus(c *fiber.Ctx, status string) error {
	orderID := c.Params("orderId")

	var order models.Order
	err := database.GetDB().QueryRow(c.Context(), `
		UPDATE orders SET status = $1
		WHERE id = $2
		RETURNING id, customer_id, product_id, quantity, total_price, status, order_date
	`, status, orderID).Scan(
		&order.ID, &order.CustomerID, &order.ProductID, &order.Quantity, &order.TotalPrice, &order.Status, &order.OrderDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Order not found"})
		}
		log.Printf("Error updating order %s to %s: %v", orderID, status, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server Error"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Order " + status + " successfully", "order": order})
}
