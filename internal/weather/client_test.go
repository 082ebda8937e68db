package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent_NotConfigured(t *testing.T) {
	c := NewClient("", 6.9022, 79.8607)

	_, err := c.Current(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCurrent_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "6.9022", r.URL.Query().Get("lat"))
		assert.Equal(t, "79.8607", r.URL.Query().Get("lon"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"main": {"temp": 28.6},
			"weather": [{"description": "scattered clouds", "icon": "03d"}],
			"name": "Colombo"
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", 6.9022, 79.8607)
	c.baseURL = srv.URL

	report, err := c.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 29, report.Temp, "temperature is rounded to the nearest degree")
	assert.Equal(t, "scattered clouds", report.Description)
	assert.Equal(t, "03d", report.Icon)
	assert.Equal(t, "Colombo", report.City)
}

func TestCurrent_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad-key", 6.9022, 79.8607)
	c.baseURL = srv.URL

	_, err := c.Current(context.Background())

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
}

func TestCurrent_MissingConditions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"main": {"temp": 20.0}, "weather": [], "name": "Colombo"}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", 6.9022, 79.8607)
	c.baseURL = srv.URL

	_, err := c.Current(context.Background())
	assert.Error(t, err)
}
