package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"biztime-service/pkg/logger"
	"biztime-service/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	e := echo.New()
	e.Use(RequestIDMiddleware)
	var seen string
	e.GET("/", func(c echo.Context) error {
		seen, _ = c.Get(logger.RequestIDKey).(string)
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get(logger.RequestIDKey)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, seen)
}

func TestRequestIDMiddlewareKeepsInboundID(t *testing.T) {
	e := echo.New()
	e.Use(RequestIDMiddleware)
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(logger.RequestIDKey, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(logger.RequestIDKey))
}

func TestRequestIDMiddlewareReplacesUnsafeID(t *testing.T) {
	e := echo.New()
	e.Use(RequestIDMiddleware)
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, inbound := range []string{"has space", "semi;colon", strings.Repeat("a", 65)} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(logger.RequestIDKey, inbound)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		id := rec.Header().Get(logger.RequestIDKey)
		assert.NotEqual(t, inbound, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err, inbound)
	}
}

func TestMetricsMiddlewareRecordsRenderedStatus(t *testing.T) {
	m := prometheus.NewMetrics("test")
	e := echo.New()
	e.Use(MetricsMiddleware(m))
	e.GET("/companies", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/companies", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HttpRequestsTotal.WithLabelValues(http.MethodGet, "/companies", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HttpRequestsTotal.WithLabelValues(http.MethodGet, "/boom", "500")))
}
