package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"biztime-service/internal/apperror"
	"biztime-service/internal/model"
	"biztime-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateInvoiceRequest is the body of POST /invoices
type CreateInvoiceRequest struct {
	CompCode *string             `json:"comp_code"`
	Amt      decimal.NullDecimal `json:"amt"`
}

// UpdateInvoiceRequest is the body of PUT /invoices/:id.
// A missing amt or paid is written as NULL and rejected by the database.
type UpdateInvoiceRequest struct {
	Amt  decimal.NullDecimal `json:"amt"`
	Paid *bool               `json:"paid"`
}

func invoiceNotFound(id string) error {
	return apperror.NotFound("Can't find invoice with id of %s", id)
}

func parseInvoiceID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// ListInvoices returns every invoice as {id, comp_code}
func (h *Handler) ListInvoices(c echo.Context) error {
	log := logger.FromContext(c)
	h.metrics.RecordInvoiceOperation("list")
	defer h.metrics.TrackDBOperation("select")(time.Now())

	var invoices []model.Invoice
	if err := h.db.WithContext(c.Request().Context()).Select("id", "comp_code").Order("id").Find(&invoices).Error; err != nil {
		log.Error("Failed to list invoices", zap.Error(err))
		return err
	}

	log.Info("Invoices retrieved successfully", zap.Int("count", len(invoices)))
	return c.JSON(http.StatusOK, echo.Map{"invoices": model.ToInvoiceSummaries(invoices)})
}

// GetInvoice returns one invoice with its company embedded
func (h *Handler) GetInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	rawID := c.Param("id")
	h.metrics.RecordInvoiceOperation("get")

	id, err := parseInvoiceID(c)
	if err != nil {
		log.Error("Invalid invoice ID", zap.String("invoice_id", rawID), zap.Error(err))
		return err
	}

	defer h.metrics.TrackDBOperation("select")(time.Now())

	var invoice model.Invoice
	err = h.db.WithContext(c.Request().Context()).
		InnerJoins("Company").
		Where("invoices.id = ?", id).
		Take(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Invoice not found", zap.String("invoice_id", rawID))
			return invoiceNotFound(rawID)
		}
		log.Error("Failed to get invoice", zap.String("invoice_id", rawID), zap.Error(err))
		return err
	}

	var company model.Company
	if invoice.Company != nil {
		company = *invoice.Company
	}

	log.Info("Invoice retrieved successfully", zap.String("invoice_id", rawID))
	return c.JSON(http.StatusOK, echo.Map{"invoice": model.ToInvoiceDetail(invoice, company)})
}

// CreateInvoice adds an unpaid invoice dated today
func (h *Handler) CreateInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	h.metrics.RecordInvoiceOperation("create")

	var req CreateInvoiceRequest
	if err := bindBody(c, &req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return err
	}

	paid := false
	invoice := model.Invoice{
		CompCode: req.CompCode,
		Amt:      req.Amt,
		Paid:     &paid,
		AddDate:  model.DateOf(h.now()),
	}

	defer h.metrics.TrackDBOperation("insert")(time.Now())
	db := h.db.WithContext(c.Request().Context())

	if err := db.Omit(clause.Associations).Create(&invoice).Error; err != nil {
		log.Error("Failed to create invoice", zap.Error(err))
		return err
	}

	// Read back so amt carries the column's precision
	var created model.Invoice
	if err := db.Where("id = ?", invoice.ID).Take(&created).Error; err != nil {
		return err
	}

	log.Info("Invoice created successfully",
		zap.Uint("invoice_id", created.ID),
		zap.Stringp("comp_code", created.CompCode))
	return c.JSON(http.StatusCreated, echo.Map{"invoice": model.ToInvoiceView(created)})
}

// UpdateInvoice changes amt and paid, deriving paid_date from the prior payment state.
// The read and the write share a transaction holding a lock on the row.
func (h *Handler) UpdateInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	rawID := c.Param("id")
	h.metrics.RecordInvoiceOperation("update")

	id, err := parseInvoiceID(c)
	if err != nil {
		log.Error("Invalid invoice ID", zap.String("invoice_id", rawID), zap.Error(err))
		return err
	}

	var req UpdateInvoiceRequest
	if err := bindBody(c, &req); err != nil {
		log.Error("Invalid request data", zap.String("invoice_id", rawID), zap.Error(err))
		return err
	}

	defer h.metrics.TrackDBOperation("update")(time.Now())

	var updated model.Invoice
	var transition model.PaymentTransition
	err = h.db.WithContext(c.Request().Context()).Transaction(func(tx *gorm.DB) error {
		var current model.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "paid", "paid_date").
			Where("id = ?", id).
			Take(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invoiceNotFound(rawID)
			}
			return err
		}

		paid := req.Paid != nil && *req.Paid
		var paidDate *time.Time
		paidDate, transition = model.NextPaidDate(current.PaidDate, paid, h.now())

		result := tx.Model(&model.Invoice{}).Where("id = ?", id).Updates(map[string]interface{}{
			"amt":       req.Amt,
			"paid":      req.Paid,
			"paid_date": paidDate,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return invoiceNotFound(rawID)
		}

		return tx.Where("id = ?", id).Take(&updated).Error
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			log.Warn("Invoice not found for update", zap.String("invoice_id", rawID))
		} else {
			log.Error("Failed to update invoice", zap.String("invoice_id", rawID), zap.Error(err))
		}
		return err
	}

	h.metrics.RecordInvoicePayment(string(transition))
	log.Info("Invoice updated successfully",
		zap.String("invoice_id", rawID),
		zap.String("transition", string(transition)))
	return c.JSON(http.StatusOK, echo.Map{"invoice": model.ToInvoiceView(updated)})
}

// DeleteInvoice removes an invoice
func (h *Handler) DeleteInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	rawID := c.Param("id")
	h.metrics.RecordInvoiceOperation("delete")

	id, err := parseInvoiceID(c)
	if err != nil {
		log.Error("Invalid invoice ID", zap.String("invoice_id", rawID), zap.Error(err))
		return err
	}

	defer h.metrics.TrackDBOperation("delete")(time.Now())

	result := h.db.WithContext(c.Request().Context()).Where("id = ?", id).Delete(&model.Invoice{})
	if result.Error != nil {
		log.Error("Failed to delete invoice", zap.String("invoice_id", rawID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		log.Warn("Invoice not found for deletion", zap.String("invoice_id", rawID))
		return invoiceNotFound(rawID)
	}

	log.Info("Invoice deleted successfully", zap.String("invoice_id", rawID))
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}
