package middleware

import (
	"strconv"
	"time"

	"biztime-service/prometheus"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and durations by route
func MetricsMiddleware(m *prometheus.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			// Render the error first so the recorded status is the one sent
			if err != nil {
				c.Error(err)
			}

			duration := time.Since(start).Seconds()
			method := c.Request().Method
			path := c.Path()
			status := strconv.Itoa(c.Response().Status)

			m.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
			m.HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)

			return err
		}
	}
}
