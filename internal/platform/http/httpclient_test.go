package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	c := NewHTTPClient(7*time.Second, "")

	assert.Equal(t, 7*time.Second, c.Timeout)
	ht, ok := c.Transport.(*headerTransport)
	require.True(t, ok, "transport should add browser headers")
	assert.Equal(t, DefaultUserAgent, ht.headers.Get("User-Agent"))
	_, ok = ht.base.(*http.Transport)
	assert.True(t, ok)
}

func TestWithBrowserHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		userAgent    string
		reqHeaders   map[string]string
		validateFunc func(t *testing.T, got http.Header)
	}{
		{
			name: "defaults are applied",
			validateFunc: func(t *testing.T, got http.Header) {
				assert.Equal(t, DefaultUserAgent, got.Get("User-Agent"))
				assert.Equal(t, "en-US,en;q=0.9", got.Get("Accept-Language"))
				assert.NotEmpty(t, got.Get("Accept"))
			},
		},
		{
			name:      "configured user agent",
			userAgent: "secmaster-test/1.0",
			validateFunc: func(t *testing.T, got http.Header) {
				assert.Equal(t, "secmaster-test/1.0", got.Get("User-Agent"))
			},
		},
		{
			name:       "request headers win",
			reqHeaders: map[string]string{"Accept": "application/json", "Referer": "https://finance.yahoo.com"},
			validateFunc: func(t *testing.T, got http.Header) {
				assert.Equal(t, "application/json", got.Get("Accept"))
				assert.Equal(t, "https://finance.yahoo.com", got.Get("Referer"))
				assert.Equal(t, DefaultUserAgent, got.Get("User-Agent"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got http.Header
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			client := &http.Client{Transport: WithBrowserHeaders(server.Client().Transport, tt.userAgent)}
			req, err := http.NewRequest(http.MethodGet, server.URL, nil)
			require.NoError(t, err)
			for k, v := range tt.reqHeaders {
				req.Header.Set(k, v)
			}

			res, err := client.Do(req)
			require.NoError(t, err)
			require.NoError(t, res.Body.Close())

			tt.validateFunc(t, got)
		})
	}
}
