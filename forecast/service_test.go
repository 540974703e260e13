package forecast_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"app/forecast"
	"app/models"

	"github.com/stretchr/testify/assert"
)

type fakeCatalog struct {
	products []models.Product
}

func (f *fakeCatalog) GetProduct(_ context.Context, productID string) (models.Product, error) {
	for _, p := range f.products {
		if p.ID == productID {
			return p, nil
		}
	}
	return models.Product{}, forecast.ErrProductNotFound
}

func (f *fakeCatalog) ListActiveProducts(_ context.Context) ([]models.Product, error) {
	return f.products, nil
}

type fakeOrders struct {
	orders map[string][]forecast.OrderRecord
}

func (f *fakeOrders) OrderHistory(_ context.Context, productID string) ([]forecast.OrderRecord, error) {
	return f.orders[productID], nil
}

type fakeStore struct {
	records      map[string]models.Prediction
	upsertErr    error
	upsertErrFor map[string]error
}

func (f *fakeStore) UpsertPrediction(_ context.Context, p models.Prediction) (models.Prediction, error) {
	if f.upsertErr != nil {
		return models.Prediction{}, f.upsertErr
	}
	if err := f.upsertErrFor[p.ProductID]; err != nil {
		return models.Prediction{}, err
	}
	if f.records == nil {
		f.records = make(map[string]models.Prediction)
	}
	f.records[p.ProductID] = p
	return p, nil
}

func (f *fakeStore) GetPrediction(_ context.Context, productID string) (models.Prediction, error) {
	p, ok := f.records[productID]
	if !ok {
		return models.Prediction{}, forecast.ErrPredictionNotFound
	}
	return p, nil
}

// dailyOrders yields one order per day for the given quantities.
func dailyOrders(start time.Time, quantities ...int) []forecast.OrderRecord {
	orders := make([]forecast.OrderRecord, 0, len(quantities))
	for i, q := range quantities {
		orders = append(orders, forecast.OrderRecord{OccurredAt: start.AddDate(0, 0, i), Quantity: q})
	}
	return orders
}

func newTestService(catalog *fakeCatalog, orders *fakeOrders, store *fakeStore) *forecast.Service {
	return forecast.NewService(catalog, orders, store, forecast.DefaultParams())
}

func TestComputePredictionFlatHistory(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{{ID: "p1", Name: "Widget", Stock: 100}}}
	orders := &fakeOrders{orders: map[string][]forecast.OrderRecord{
		"p1": dailyOrders(day("2025-05-01"), 5, 5, 5, 5, 5, 5, 5, 5, 5, 5),
	}}
	store := &fakeStore{}
	svc := newTestService(catalog, orders, store)

	record, err := svc.ComputePrediction(context.Background(), "p1")
	assert.NoError(t, err)

	assert.Equal(t, "p1", record.ProductID)
	assert.Equal(t, "Widget", record.ProductName)
	assert.Equal(t, "moving-average-trend", record.Method)
	assert.Len(t, record.History, 10)
	assert.Len(t, record.Forecast, 30)
	assert.InDelta(t, 150.0, record.PredictedTotal, 0.01)
	assert.Equal(t, 1.0, record.Confidence)
	assert.Equal(t, 80, record.RecommendedReorder)
	assert.False(t, record.GeneratedAt.IsZero())

	// predicted total matches the sum of the forecast points
	sum := 0.0
	for _, p := range record.Forecast {
		sum += p.Predicted
	}
	assert.InDelta(t, record.PredictedTotal, sum, 0.01)

	// the record was persisted as returned
	stored, err := store.GetPrediction(context.Background(), "p1")
	assert.NoError(t, err)
	assert.Equal(t, record, stored)
}

func TestComputePredictionAllZeroHistory(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{{ID: "p1", Name: "Widget", Stock: 50}}}
	orders := &fakeOrders{orders: map[string][]forecast.OrderRecord{
		"p1": dailyOrders(day("2025-05-01"), 0, 0, 0, 0, 0, 0, 0, 0, 0, 0),
	}}
	svc := newTestService(catalog, orders, &fakeStore{})

	record, err := svc.ComputePrediction(context.Background(), "p1")
	assert.NoError(t, err)
	assert.Equal(t, 0.5, record.Confidence)
	assert.Equal(t, 0.0, record.PredictedTotal)
	assert.Equal(t, 0, record.RecommendedReorder)
}

func TestComputePredictionProductNotFound(t *testing.T) {
	svc := newTestService(&fakeCatalog{}, &fakeOrders{}, &fakeStore{})

	_, err := svc.ComputePrediction(context.Background(), "missing")
	assert.ErrorIs(t, err, forecast.ErrProductNotFound)
}

func TestComputePredictionInsufficientHistoryKeepsPriorRecord(t *testing.T) {
	prior := models.Prediction{ProductID: "p1", ProductName: "Widget", PredictedTotal: 42}
	catalog := &fakeCatalog{products: []models.Product{{ID: "p1", Name: "Widget", Stock: 10}}}
	orders := &fakeOrders{orders: map[string][]forecast.OrderRecord{
		"p1": dailyOrders(day("2025-05-01"), 3, 1, 2, 4, 2),
	}}
	store := &fakeStore{records: map[string]models.Prediction{"p1": prior}}
	svc := newTestService(catalog, orders, store)

	_, err := svc.ComputePrediction(context.Background(), "p1")
	assert.ErrorIs(t, err, forecast.ErrInsufficientHistory)

	stored, err := store.GetPrediction(context.Background(), "p1")
	assert.NoError(t, err)
	assert.Equal(t, prior, stored)
}

func TestComputePredictionStoreFailure(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{{ID: "p1", Name: "Widget", Stock: 10}}}
	orders := &fakeOrders{orders: map[string][]forecast.OrderRecord{
		"p1": dailyOrders(day("2025-05-01"), 1, 2, 3, 4, 5, 6, 7),
	}}
	store := &fakeStore{upsertErr: errors.New("connection reset")}
	svc := newTestService(catalog, orders, store)

	_, err := svc.ComputePrediction(context.Background(), "p1")
	var storeErr *forecast.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "upsert", storeErr.Op)
}

func TestComputePredictionIdempotent(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{{ID: "p1", Name: "Widget", Stock: 25}}}
	orders := &fakeOrders{orders: map[string][]forecast.OrderRecord{
		"p1": dailyOrders(day("2025-05-01"), 2, 4, 3, 5, 4, 6, 5, 7, 6, 8),
	}}
	svc := newTestService(catalog, orders, &fakeStore{})

	first, err := svc.ComputePrediction(context.Background(), "p1")
	assert.NoError(t, err)
	second, err := svc.ComputePrediction(context.Background(), "p1")
	assert.NoError(t, err)

	first.GeneratedAt = time.Time{}
	second.GeneratedAt = time.Time{}
	assert.Equal(t, first, second)
}

func TestComputeAllIsolatesFailures(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{
		{ID: "good", Name: "Widget", Stock: 10},
		{ID: "sparse", Name: "Gadget", Stock: 5},
	}}
	orders := &fakeOrders{orders: map[string][]forecast.OrderRecord{
		"good":   dailyOrders(day("2025-05-01"), 1, 2, 1, 3, 2, 1, 2, 3),
		"sparse": dailyOrders(day("2025-05-01"), 4, 2),
	}}
	store := &fakeStore{}
	svc := newTestService(catalog, orders, store)

	summary, err := svc.ComputeAll(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	if assert.Len(t, summary.Errors, 1) {
		assert.Equal(t, "sparse", summary.Errors[0].ProductID)
		assert.Equal(t, "Gadget", summary.Errors[0].ProductName)
		assert.Contains(t, summary.Errors[0].Error, "insufficient historical data")
	}

	// the failing product left no record behind
	_, err = store.GetPrediction(context.Background(), "sparse")
	assert.ErrorIs(t, err, forecast.ErrPredictionNotFound)
	_, err = store.GetPrediction(context.Background(), "good")
	assert.NoError(t, err)
}

func TestComputeAllContinuesAfterStoreFailure(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{
		{ID: "flaky", Name: "Widget", Stock: 10},
		{ID: "good", Name: "Gadget", Stock: 5},
	}}
	orders := &fakeOrders{orders: map[string][]forecast.OrderRecord{
		"flaky": dailyOrders(day("2025-05-01"), 1, 2, 1, 3, 2, 1, 2),
		"good":  dailyOrders(day("2025-05-01"), 2, 3, 2, 4, 3, 2, 3),
	}}
	store := &fakeStore{upsertErrFor: map[string]error{"flaky": errors.New("connection reset")}}
	svc := newTestService(catalog, orders, store)

	summary, err := svc.ComputeAll(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	if assert.Len(t, summary.Errors, 1) {
		assert.Equal(t, "flaky", summary.Errors[0].ProductID)
		assert.Equal(t, "Widget", summary.Errors[0].ProductName)
		assert.Contains(t, summary.Errors[0].Error, "prediction store upsert")
	}

	// the product after the failing one was still computed and persisted
	_, err = store.GetPrediction(context.Background(), "good")
	assert.NoError(t, err)
	_, err = store.GetPrediction(context.Background(), "flaky")
	assert.ErrorIs(t, err, forecast.ErrPredictionNotFound)
}

func TestGetPredictionNotFound(t *testing.T) {
	svc := newTestService(&fakeCatalog{}, &fakeOrders{}, &fakeStore{})

	_, err := svc.GetPrediction(context.Background(), "p1")
	assert.ErrorIs(t, err, forecast.ErrPredictionNotFound)
}

func TestGetPredictionPassthrough(t *testing.T) {
	record := models.Prediction{ProductID: "p1", ProductName: "Widget", PredictedTotal: 12.5}
	store := &fakeStore{records: map[string]models.Prediction{"p1": record}}
	svc := newTestService(&fakeCatalog{}, &fakeOrders{}, store)

	got, err := svc.GetPrediction(context.Background(), "p1")
	assert.NoError(t, err)
	assert.Equal(t, record, got)
}
