package handlers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestSearchRouteRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/products/search?query=widget", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSearchRouteRequiresQuery(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/products/search", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "customer"))
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRelatedRouteRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/products/related?productId=p1", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDemandRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/chatbot/demand/top", "/api/chatbot/demand/p1"} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestDashboardAnalyticsRequireAdmin(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/dashboard/summary", "/api/dashboard/alerts"} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)

		req = httptest.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "customer"))
		resp, err = app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, path)
	}
}
