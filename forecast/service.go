package forecast

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"app/models"
)

// ProductSource resolves catalog products.
type ProductSource interface {
	// GetProduct looks up a single product by id, returning
	// ErrProductNotFound if it does not exist.
	GetProduct(ctx context.Context, productID string) (models.Product, error)
	// ListActiveProducts enumerates all non-deleted products.
	ListActiveProducts(ctx context.Context) ([]models.Product, error)
}

// OrderSource provides the raw order history of a product.
type OrderSource interface {
	OrderHistory(ctx context.Context, productID string) ([]OrderRecord, error)
}

// Store persists computed predictions, keyed by product id. Upsert must be
// atomic per key and replace any prior record wholesale.
type Store interface {
	UpsertPrediction(ctx context.Context, p models.Prediction) (models.Prediction, error)
	// GetPrediction returns ErrPredictionNotFound when no record exists.
	GetPrediction(ctx context.Context, productID string) (models.Prediction, error)
}

// Service runs the demand prediction pipeline: aggregate order history,
// forecast, score confidence, recommend replenishment, persist.
type Service struct {
	products ProductSource
	orders   OrderSource
	store    Store
	params   Params
}

// NewService wires a prediction service over the given sources.
func NewService(products ProductSource, orders OrderSource, store Store, params Params) *Service {
	return &Service{products: products, orders: orders, store: store, params: params}
}

// ComputePrediction runs the full pipeline for one product and returns the
// persisted record. It fails with ErrProductNotFound, ErrInsufficientHistory
// or *StoreError; on failure the previously stored record, if any, is left
// untouched.
func (s *Service) ComputePrediction(ctx context.Context, productID string) (models.Prediction, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return models.Prediction{}, err
		}
		return models.Prediction{}, fmt.Errorf("load product %s: %w", productID, err)
	}

	orders, err := s.orders.OrderHistory(ctx, productID)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("load order history for %s: %w", productID, err)
	}

	history := BuildDailyHistory(orders)
	if len(history) < MinHistoryDays {
		return models.Prediction{}, ErrInsufficientHistory
	}

	points := Forecast(history, s.params)
	total := 0.0
	for _, p := range points {
		total += p.Predicted
	}
	total = round2(total)

	record := models.Prediction{
		ProductID:          product.ID,
		ProductName:        product.Name,
		History:            history,
		Forecast:           points,
		PredictedTotal:     total,
		Confidence:         Confidence(history, s.params),
		RecommendedReorder: ReorderQuantity(total, product.Stock, s.params.SafetyFactor),
		Method:             Method,
		GeneratedAt:        time.Now().UTC(),
	}

	saved, err := s.store.UpsertPrediction(ctx, record)
	if err != nil {
		return models.Prediction{}, &StoreError{Op: "upsert", Err: err}
	}
	return saved, nil
}

// ComputeAll runs the pipeline across every non-deleted product. Per-product
// failures are isolated: they are recorded in the summary's error list and the
// sweep continues with the next product. Products are processed sequentially;
// a failed product is naturally retried on the next scheduled sweep.
func (s *Service) ComputeAll(ctx context.Context) (models.BatchSummary, error) {
	products, err := s.products.ListActiveProducts(ctx)
	if err != nil {
		return models.BatchSummary{}, fmt.Errorf("list products: %w", err)
	}

	summary := models.BatchSummary{TotalProducts: len(products)}
	for _, product := range products {
		if _, err := s.ComputePrediction(ctx, product.ID); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, models.BatchError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Error:       err.Error(),
			})
			log.Printf("[prediction] %s (%s): %v", product.Name, product.ID, err)
			continue
		}
		summary.Successful++
	}
	return summary, nil
}

// GetPrediction is a read-only passthrough to the store.
func (s *Service) GetPrediction(ctx context.Context, productID string) (models.Prediction, error) {
	record, err := s.store.GetPrediction(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrPredictionNotFound) {
			return models.Prediction{}, err
		}
		return models.Prediction{}, &StoreError{Op: "get", Err: err}
	}
	return record, nil
}
