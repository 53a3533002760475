package router

import (
	"myStorefront/internal/rest"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestOrdersRoutesUseProvidedAuthMiddleware(t *testing.T) {
	e := echo.New()
	api := e.Group("/api/v1")

	guarded := 0
	var authRequired echo.MiddlewareFunc = func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			guarded++
			return c.NoContent(http.StatusUnauthorized)
		}
	}

	SetOrdersRoutes(api, rest.NewOrdersHandler(nil), authRequired)

	for _, path := range []string{"/api/v1/orders/1", "/api/v1/customers/1/orders"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	assert.Equal(t, 2, guarded)
}
