package handler

import (
	"errors"
	"net/http"
	"time"

	"biztime-service/internal/apperror"
	"biztime-service/internal/model"
	"biztime-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyRequest is the body of company creation and update requests.
// Fields are pointers so a missing name reaches the database as NULL.
type CompanyRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func companyNotFound(code string) error {
	return apperror.NotFound("Can't find company with code of %s", code)
}

// ListCompanies returns every company as {code, name}
func (h *Handler) ListCompanies(c echo.Context) error {
	log := logger.FromContext(c)
	h.metrics.RecordCompanyOperation("list")
	defer h.metrics.TrackDBOperation("select")(time.Now())

	var companies []model.Company
	if err := h.db.WithContext(c.Request().Context()).Select("code", "name").Find(&companies).Error; err != nil {
		log.Error("Failed to list companies", zap.Error(err))
		return err
	}

	log.Info("Companies retrieved successfully", zap.Int("count", len(companies)))
	return c.JSON(http.StatusOK, echo.Map{"companies": model.ToCompanySummaries(companies)})
}

// GetCompany returns one company with its industry and invoice ids
func (h *Handler) GetCompany(c echo.Context) error {
	log := logger.FromContext(c)
	code := c.Param("code")
	h.metrics.RecordCompanyOperation("get")
	defer h.metrics.TrackDBOperation("select")(time.Now())

	db := h.db.WithContext(c.Request().Context())

	// Existence is decided on the company row alone; the industry is optional
	var company model.Company
	if err := db.Where("code = ?", code).Take(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Company not found", zap.String("code", code))
			return companyNotFound(code)
		}
		log.Error("Failed to get company", zap.String("code", code), zap.Error(err))
		return err
	}

	var industries []string
	if err := db.Table("companies_industries AS ci").
		Joins("JOIN industries AS i ON i.code = ci.industry_code").
		Where("ci.comp_code = ?", code).
		Order("ci.id").
		Limit(1).
		Pluck("i.industry", &industries).Error; err != nil {
		log.Error("Failed to get company industry", zap.String("code", code), zap.Error(err))
		return err
	}
	var industry *string
	if len(industries) > 0 {
		industry = &industries[0]
	}

	var invoiceIDs []uint
	if err := db.Model(&model.Invoice{}).Where("comp_code = ?", code).Order("id").Pluck("id", &invoiceIDs).Error; err != nil {
		log.Error("Failed to get company invoices", zap.String("code", code), zap.Error(err))
		return err
	}

	log.Info("Company retrieved successfully",
		zap.String("code", code),
		zap.Int("invoices", len(invoiceIDs)))
	return c.JSON(http.StatusOK, echo.Map{"company": model.ToCompanyDetail(company, industry, invoiceIDs)})
}

// CreateCompany adds a company whose code is the slug of its name
func (h *Handler) CreateCompany(c echo.Context) error {
	log := logger.FromContext(c)
	h.metrics.RecordCompanyOperation("create")

	var req CompanyRequest
	if err := bindBody(c, &req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return err
	}

	company := model.Company{Name: req.Name, Description: req.Description}
	if req.Name != nil {
		company.Code = h.slugger.Slug(*req.Name)
	}

	defer h.metrics.TrackDBOperation("insert")(time.Now())

	// A duplicate code is a unique violation and surfaces as a server error
	if err := h.db.WithContext(c.Request().Context()).Create(&company).Error; err != nil {
		log.Error("Failed to create company", zap.String("code", company.Code), zap.Error(err))
		return err
	}

	log.Info("Company created successfully", zap.String("code", company.Code))
	return c.JSON(http.StatusCreated, echo.Map{"company": model.ToCompanyView(company)})
}

// UpdateCompany replaces name and description; the code never changes
func (h *Handler) UpdateCompany(c echo.Context) error {
	log := logger.FromContext(c)
	code := c.Param("code")
	h.metrics.RecordCompanyOperation("update")

	var req CompanyRequest
	if err := bindBody(c, &req); err != nil {
		log.Error("Invalid request data", zap.String("code", code), zap.Error(err))
		return err
	}

	defer h.metrics.TrackDBOperation("update")(time.Now())
	db := h.db.WithContext(c.Request().Context())

	result := db.Model(&model.Company{}).Where("code = ?", code).Updates(map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	})
	if result.Error != nil {
		log.Error("Failed to update company", zap.String("code", code), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		log.Warn("Company not found for update", zap.String("code", code))
		return companyNotFound(code)
	}

	var company model.Company
	if err := db.Where("code = ?", code).Take(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return companyNotFound(code)
		}
		return err
	}

	log.Info("Company updated successfully", zap.String("code", code))
	return c.JSON(http.StatusOK, echo.Map{"company": model.ToCompanyView(company)})
}

// DeleteCompany removes a company. Companies with invoices fail on the foreign key.
func (h *Handler) DeleteCompany(c echo.Context) error {
	log := logger.FromContext(c)
	code := c.Param("code")
	h.metrics.RecordCompanyOperation("delete")
	defer h.metrics.TrackDBOperation("delete")(time.Now())

	result := h.db.WithContext(c.Request().Context()).Where("code = ?", code).Delete(&model.Company{})
	if result.Error != nil {
		log.Error("Failed to delete company", zap.String("code", code), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		log.Warn("Company not found for deletion", zap.String("code", code))
		return companyNotFound(code)
	}

	log.Info("Company deleted successfully", zap.String("code", code))
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}
