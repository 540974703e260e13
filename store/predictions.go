package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"app/forecast"
	"app/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Predictions persists computed demand predictions, one row per product.
// History and forecast series are stored as jsonb.
type Predictions struct {
	db *pgxpool.Pool
}

func NewPredictions(db *pgxpool.Pool) *Predictions {
	return &Predictions{db: db}
}

// UpsertPrediction replaces the stored prediction for a product wholesale.
// The ON CONFLICT upsert keeps the replace atomic per product id.
func (s *Predictions) UpsertPrediction(ctx context.Context, p models.Prediction) (models.Prediction, error) {
	historyJSON, err := json.Marshal(p.History)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("marshal history: %w", err)
	}
	forecastJSON, err := json.Marshal(p.Forecast)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("marshal forecast: %w", err)
	}

	query := `
		INSERT INTO predictions (product_id, product_name, history, forecast, predicted_total, confidence, recommended_reorder, method, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (product_id) DO UPDATE SET
			product_name = EXCLUDED.product_name,
			history = EXCLUDED.history,
			forecast = EXCLUDED.forecast,
			predicted_total = EXCLUDED.predicted_total,
			confidence = EXCLUDED.confidence,
			recommended_reorder = EXCLUDED.recommended_reorder,
			method = EXCLUDED.method,
			generated_at = EXCLUDED.generated_at
		RETURNING product_id, product_name, history, forecast, predicted_total, confidence, recommended_reorder, method, generated_at
	`
	return s.scanPrediction(s.db.QueryRow(ctx, query,
		p.ProductID, p.ProductName, historyJSON, forecastJSON,
		p.PredictedTotal, p.Confidence, p.RecommendedReorder, p.Method, p.GeneratedAt,
	))
}

// GetPrediction returns the stored prediction for a product.
func (s *Predictions) GetPrediction(ctx context.Context, productID string) (models.Prediction, error) {
	query := `
		SELECT product_id, product_name, history, forecast, predicted_total, confidence, recommended_reorder, method, generated_at
		FROM predictions
		WHERE product_id = $1
	`
	record, err := s.scanPrediction(s.db.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Prediction{}, forecast.ErrPredictionNotFound
		}
		return models.Prediction{}, err
	}
	return record, nil
}

func (s *Predictions) scanPrediction(row pgx.Row) (models.Prediction, error) {
	var p models.Prediction
	var historyJSON, forecastJSON []byte

	err := row.Scan(
		&p.ProductID, &p.ProductName, &historyJSON, &forecastJSON,
		&p.PredictedTotal, &p.Confidence, &p.RecommendedReorder, &p.Method, &p.GeneratedAt,
	)
	if err != nil {
		return models.Prediction{}, err
	}

	if err := json.Unmarshal(historyJSON, &p.History); err != nil {
		return models.Prediction{}, fmt.Errorf("unmarshal history: %w", err)
	}
	if err := json.Unmarshal(forecastJSON, &p.Forecast); err != nil {
		return models.Prediction{}, fmt.Errorf("unmarshal forecast: %w", err)
	}
	return p, nil
}
