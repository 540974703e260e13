package store

import (
	"context"
	"errors"
	"fmt"

	"app/forecast"
	"app/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Products reads catalog products for the prediction pipeline.
type Products struct {
	db *pgxpool.Pool
}

func NewProducts(db *pgxpool.Pool) *Products {
	return &Products{db: db}
}

// GetProduct looks up one product by id.
func (s *Products) GetProduct(ctx context.Context, productID string) (models.Product, error) {
	query := `
		SELECT id, name, description, price, stock, category_id, supplier_id, is_deleted, demand_count, last_demand_update, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	var p models.Product
	err := s.db.QueryRow(ctx, query, productID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.CategoryID, &p.SupplierID, &p.IsDeleted, &p.DemandCount, &p.LastDemandUpdate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, forecast.ErrProductNotFound
		}
		return models.Product{}, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

// ListActiveProducts enumerates every non-deleted product.
func (s *Products) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, name, description, price, stock, category_id, supplier_id, is_deleted, demand_count, last_demand_update, created_at, updated_at
		FROM products
		WHERE is_deleted = false
		ORDER BY name
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.CategoryID, &p.SupplierID, &p.IsDeleted, &p.DemandCount, &p.LastDemandUpdate, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
