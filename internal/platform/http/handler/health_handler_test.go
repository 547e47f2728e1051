package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockPinger struct {
	err   error
	calls int
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	m.calls++
	return m.err
}

func setupRouter(h *HealthHandler) *gin.Engine {
	r := gin.New()
	r.Any("/healthz", h.Health)
	return r
}

func TestHealth_ResponseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		pingErr        error
		expectedStatus int
		expectedBody   string
	}{
		{name: "GET healthy", method: http.MethodGet, expectedStatus: http.StatusOK, expectedBody: `{"status":"ok"}`},
		{name: "POST healthy", method: http.MethodPost, expectedStatus: http.StatusOK, expectedBody: `{"status":"ok"}`},
		{name: "HEAD healthy", method: http.MethodHead, expectedStatus: http.StatusOK},
		{name: "OPTIONS healthy", method: http.MethodOptions, expectedStatus: http.StatusNoContent},
		{
			name:           "GET with database down",
			method:         http.MethodGet,
			pingErr:        errors.New("database is closed"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"unavailable","database":"down"}`,
		},
		{name: "HEAD with database down", method: http.MethodHead, pingErr: errors.New("closed"), expectedStatus: http.StatusServiceUnavailable},
		{name: "OPTIONS ignores database", method: http.MethodOptions, pingErr: errors.New("closed"), expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pinger := &mockPinger{err: tt.pingErr}
			router := setupRouter(NewHealthHandler(pinger))
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/healthz", nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			assert.Equal(t, 1, pinger.calls)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			} else {
				assert.Zero(t, w.Body.Len())
			}
		})
	}
}

func TestHealth_WithoutPinger(t *testing.T) {
	t.Parallel()

	router := setupRouter(NewHealthHandler(nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}
