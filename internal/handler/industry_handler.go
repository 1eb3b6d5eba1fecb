package handler

import (
	"errors"
	"net/http"
	"time"

	"biztime-service/internal/model"
	"biztime-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

var errIndustryCodeRequired = errors.New("industry code is required")

// IndustryRequest is the body of POST /industries
type IndustryRequest struct {
	Code     *string `json:"code"`
	Industry *string `json:"industry"`
}

// AssociateIndustryRequest is the body of POST /industries/:comp_code
type AssociateIndustryRequest struct {
	IndustryCode *string `json:"industry_code"`
}

// ListIndustries returns one row per (industry, company) pair, with a null
// comp_code for industries that have no companies
func (h *Handler) ListIndustries(c echo.Context) error {
	log := logger.FromContext(c)
	h.metrics.RecordIndustryOperation("list")
	defer h.metrics.TrackDBOperation("select")(time.Now())

	rows := []model.IndustryCompanyRow{}
	if err := h.db.WithContext(c.Request().Context()).
		Table("industries AS i").
		Select("i.code, i.industry, ci.comp_code").
		Joins("LEFT JOIN companies_industries AS ci ON i.code = ci.industry_code").
		Order("i.code, ci.id").
		Scan(&rows).Error; err != nil {
		log.Error("Failed to list industries", zap.Error(err))
		return err
	}

	log.Info("Industries retrieved successfully", zap.Int("rows", len(rows)))
	return c.JSON(http.StatusOK, echo.Map{"industries": rows})
}

// CreateIndustry adds an industry
func (h *Handler) CreateIndustry(c echo.Context) error {
	log := logger.FromContext(c)
	h.metrics.RecordIndustryOperation("create")

	var req IndustryRequest
	if err := bindBody(c, &req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return err
	}
	if req.Code == nil {
		log.Error("Failed to create industry", zap.Error(errIndustryCodeRequired))
		return errIndustryCodeRequired
	}

	industry := model.Industry{Code: *req.Code, Industry: req.Industry}

	defer h.metrics.TrackDBOperation("insert")(time.Now())
	if err := h.db.WithContext(c.Request().Context()).Create(&industry).Error; err != nil {
		log.Error("Failed to create industry", zap.String("code", industry.Code), zap.Error(err))
		return err
	}

	log.Info("Industry created successfully", zap.String("code", industry.Code))
	return c.JSON(http.StatusOK, echo.Map{"industry": model.ToIndustryView(industry)})
}

// AssociateIndustry links the company in the path to an industry.
// Unknown codes fail on the foreign keys and duplicate pairs are allowed.
func (h *Handler) AssociateIndustry(c echo.Context) error {
	log := logger.FromContext(c)
	compCode := c.Param("comp_code")
	h.metrics.RecordIndustryOperation("associate")

	var req AssociateIndustryRequest
	if err := bindBody(c, &req); err != nil {
		log.Error("Invalid request data", zap.String("comp_code", compCode), zap.Error(err))
		return err
	}

	association := model.CompanyIndustry{CompCode: &compCode, IndustryCode: req.IndustryCode}

	defer h.metrics.TrackDBOperation("insert")(time.Now())
	if err := h.db.WithContext(c.Request().Context()).Omit(clause.Associations).Create(&association).Error; err != nil {
		log.Error("Failed to associate industry",
			zap.String("comp_code", compCode),
			zap.Stringp("industry_code", req.IndustryCode),
			zap.Error(err))
		return err
	}

	log.Info("Industry associated successfully",
		zap.Uint("id", association.ID),
		zap.String("comp_code", compCode),
		zap.Stringp("industry_code", req.IndustryCode))
	return c.JSON(http.StatusOK, model.ToCompanyIndustryView(association))
}
