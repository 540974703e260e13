package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"app/config"
	"app/forecast"
	"app/handlers"
	"app/models"
	"app/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
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
	records map[string]models.Prediction
}

func (f *fakeStore) UpsertPrediction(_ context.Context, p models.Prediction) (models.Prediction, error) {
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

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	orders := make([]forecast.OrderRecord, 0, 10)
	for i := 0; i < 10; i++ {
		orders = append(orders, forecast.OrderRecord{OccurredAt: start.AddDate(0, 0, i), Quantity: 5})
	}

	svc := forecast.NewService(
		&fakeCatalog{products: []models.Product{{ID: "p1", Name: "Widget", Stock: 100}}},
		&fakeOrders{orders: map[string][]forecast.OrderRecord{"p1": orders}},
		&fakeStore{},
		forecast.DefaultParams(),
	)
	handlers.SetPredictionService(svc)

	app := fiber.New()
	routes.SetupRoutes(app)
	return app
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := models.JwtClaims{
		UserID: "u1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return token
}

func TestPredictionRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/predictions/p1", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPredictionRoutesRequireAdmin(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/predictions/p1", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "customer"))
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestComputePredictionEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/predictions/p1", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin"))
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var payload struct {
		Success    bool              `json:"success"`
		Prediction models.Prediction `json:"prediction"`
	}
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.True(t, payload.Success)
	assert.InDelta(t, 150.0, payload.Prediction.PredictedTotal, 0.01)
	assert.Equal(t, 80, payload.Prediction.RecommendedReorder)
	assert.Len(t, payload.Prediction.Forecast, 30)
}

func TestComputePredictionEndpointUnknownProduct(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/predictions/nope", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin"))
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetPredictionEndpointBeforeCompute(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/predictions/p1", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin"))
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestComputeAllEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/predictions/compute-all", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin"))
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var payload struct {
		Success bool                `json:"success"`
		Summary models.BatchSummary `json:"summary"`
	}
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, 1, payload.Summary.TotalProducts)
	assert.Equal(t, 1, payload.Summary.Successful)
	assert.Equal(t, 0, payload.Summary.Failed)
}
