package store

import (
	"context"
	"fmt"

	"app/forecast"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Orders reads raw order history for the prediction pipeline.
type Orders struct {
	db *pgxpool.Pool
}

func NewOrders(db *pgxpool.Pool) *Orders {
	return &Orders{db: db}
}

// OrderHistory returns every order placed for a product, oldest first.
func (s *Orders) OrderHistory(ctx context.Context, productID string) ([]forecast.OrderRecord, error) {
	query := `
		SELECT order_date, quantity
		FROM orders
		WHERE product_id = $1
		ORDER BY order_date
	`
	rows, err := s.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("query order history: %w", err)
	}
	defer rows.Close()

	records := make([]forecast.OrderRecord, 0)
	for rows.Next() {
		var r forecast.OrderRecord
		if err := rows.Scan(&r.OccurredAt, &r.Quantity); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
