package server

import (
	"biztime-service/internal/apperror"
	"biztime-service/internal/handler"
	mid "biztime-service/internal/middleware"
	"biztime-service/pkg/logger"
	"biztime-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// New constructs the echo instance with all middleware and routes applied
func New(h *handler.Handler, metrics *prometheus.Metrics, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperror.Handler(log)

	// Order matters: the request id must exist before the logger reads it
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(mid.MetricsMiddleware(metrics))

	e.GET("/health", h.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	companies := e.Group("/companies")
	companies.GET("", h.ListCompanies)
	companies.GET("/:code", h.GetCompany)
	companies.POST("", h.CreateCompany)
	companies.PUT("/:code", h.UpdateCompany)
	companies.DELETE("/:code", h.DeleteCompany)

	invoices := e.Group("/invoices")
	invoices.GET("", h.ListInvoices)
	invoices.GET("/:id", h.GetInvoice)
	invoices.POST("", h.CreateInvoice)
	invoices.PUT("/:id", h.UpdateInvoice)
	invoices.DELETE("/:id", h.DeleteInvoice)

	industries := e.Group("/industries")
	industries.GET("", h.ListIndustries)
	industries.POST("", h.CreateIndustry)
	industries.POST("/:comp_code", h.AssociateIndustry)

	return e
}
