package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"securities_master/internal/app/di"
	"securities_master/internal/app/router"
	"securities_master/internal/platform/config"
	"securities_master/internal/platform/db"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		Logging:  config.LoggingConfig{Level: "error"},
	}
	gdb, err := di.OpenDatabase(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	h, err := di.NewHandlers(gdb)
	require.NoError(t, err)
	return router.NewRouter(h.Health, h.Symbols, h.Prices), gdb
}

func seedPrices(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	var vendor db.DataVendor
	require.NoError(t, gdb.Take(&vendor).Error)
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sym := &db.Symbol{Ticker: "MMM", Instrument: "stock", Name: "3M", Currency: "USD", CreatedDate: ts, LastUpdatedDate: ts}
	require.NoError(t, gdb.Create(sym).Error)
	for d := 12; d <= 14; d++ {
		require.NoError(t, gdb.Create(&db.DailyPrice{
			DataVendorID: vendor.ID, SymbolID: sym.ID,
			PriceDate:   time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC),
			CreatedDate: ts, LastUpdatedDate: ts,
			ClosePrice:  float64(100 + d), AdjClosePrice: float64(100 + d), Volume: 10,
		}).Error)
	}
}

func TestNewRouter(t *testing.T) {
	r, gdb := setupRouter(t)
	seedPrices(t, gdb)

	tests := []struct {
		name           string
		method         string
		url            string
		expectedStatus int
		expectedBody   string
	}{
		{name: "health", method: http.MethodGet, url: "/healthz", expectedStatus: http.StatusOK, expectedBody: `{"status":"ok"}`},
		{name: "health head", method: http.MethodHead, url: "/healthz", expectedStatus: http.StatusOK},
		{name: "symbols", method: http.MethodGet, url: "/symbols", expectedStatus: http.StatusOK,
			expectedBody: `[{"ticker":"MMM","name":"3M","currency":"USD"}]`},
		{name: "prices newest first", method: http.MethodGet, url: "/prices/mmm?limit=2", expectedStatus: http.StatusOK,
			expectedBody: `{"ticker":"MMM","prices":[` +
				`{"date":"2024-06-14","open":"0","high":"0","low":"0","close":"114","adj_close":"114","volume":10},` +
				`{"date":"2024-06-13","open":"0","high":"0","low":"0","close":"113","adj_close":"113","volume":10}]}`},
		{name: "unknown ticker", method: http.MethodGet, url: "/prices/NOPE", expectedStatus: http.StatusNotFound,
			expectedBody: `{"error":"symbol not found"}`},
		{name: "unknown route", method: http.MethodGet, url: "/candles/MMM", expectedStatus: http.StatusNotFound},
		{name: "writes are not routed", method: http.MethodPost, url: "/symbols", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}
