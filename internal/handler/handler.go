package handler

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"biztime-service/pkg/slugify"
	"biztime-service/prometheus"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Handler serves the companies, invoices and industries routes
type Handler struct {
	db      *gorm.DB
	metrics *prometheus.Metrics
	slugger slugify.Slugger
	now     func() time.Time
}

// Option customizes a Handler
type Option func(*Handler)

// WithSlugger replaces the strategy deriving company codes from names
func WithSlugger(s slugify.Slugger) Option {
	return func(h *Handler) {
		h.slugger = s
	}
}

// WithClock replaces the time source used for add_date and paid_date
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// New builds a Handler using the default slug strategy and the wall clock
func New(db *gorm.DB, metrics *prometheus.Metrics, opts ...Option) *Handler {
	h := &Handler{
		db:      db,
		metrics: metrics,
		slugger: slugify.Default{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// bindBody decodes the request body into dst. Malformed JSON keeps echo's 400;
// any other decode failure is returned raw and renders as a 500.
func bindBody(c echo.Context, dst any) error {
	err := c.Bind(dst)
	if err == nil {
		return nil
	}

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Internal == nil {
		return err
	}

	var syntaxErr *json.SyntaxError
	if errors.As(httpErr.Internal, &syntaxErr) || errors.Is(httpErr.Internal, io.ErrUnexpectedEOF) {
		return err
	}
	return httpErr.Internal
}
