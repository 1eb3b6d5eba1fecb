package handler_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"biztime-service/internal/handler"
	"biztime-service/internal/model"
	"biztime-service/internal/server"
	"biztime-service/pkg/config"
	"biztime-service/pkg/database"
	"biztime-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// today is the fixed clock handed to the handlers
var today = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	e       *echo.Echo
	db      *gorm.DB
	metrics *prometheus.Metrics
}

func setupTestEnv(t *testing.T, opts ...handler.Option) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(&config.DBConfig{
		Driver:       "sqlite",
		SQLitePath:   fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(db, zap.NewNop()))
	seed(t, db)

	metrics := prometheus.NewMetrics("biztime_test")
	opts = append([]handler.Option{handler.WithClock(func() time.Time { return today })}, opts...)
	h := handler.New(db, metrics, opts...)

	return &testEnv{e: server.New(h, metrics, zap.NewNop()), db: db, metrics: metrics}
}

// seed loads two companies, two industries and three unpaid invoices
func seed(t *testing.T, db *gorm.DB) {
	t.Helper()

	strp := func(s string) *string { return &s }
	unpaid := func() *bool { b := false; return &b }
	addDate := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

	companies := []model.Company{
		{Code: "apple", Name: strp("Apple"), Description: strp("Maker of OSX.")},
		{Code: "ibm", Name: strp("IBM"), Description: strp("Big blue.")},
	}
	require.NoError(t, db.Create(&companies).Error)

	industries := []model.Industry{
		{Code: "acct", Industry: strp("Accounting")},
		{Code: "tech", Industry: strp("Technology")},
	}
	require.NoError(t, db.Create(&industries).Error)

	require.NoError(t, db.Create(&model.CompanyIndustry{CompCode: strp("apple"), IndustryCode: strp("tech")}).Error)

	for _, inv := range []struct {
		comp string
		amt  int64
	}{{"apple", 100}, {"apple", 200}, {"ibm", 300}} {
		invoice := model.Invoice{
			CompCode: strp(inv.comp),
			Amt:      decimal.NewNullDecimal(decimal.NewFromInt(inv.amt)),
			Paid:     unpaid(),
			AddDate:  addDate,
		}
		require.NoError(t, db.Create(&invoice).Error)
	}
}

func (env *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func notFoundBody(message string) string {
	return fmt.Sprintf(`{"error":{"message":%q,"status":404},"message":%q}`, message, message)
}
