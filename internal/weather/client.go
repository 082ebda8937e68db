// Package weather proxies current campus weather from OpenWeatherMap
// for the dashboard widget.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotConfigured indicates no API key was provided.
var ErrNotConfigured = errors.New("weather service is not configured")

// UpstreamError carries the status code returned by the provider.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weather API request failed with status %d", e.StatusCode)
}

// Report is the simplified weather object served to clients.
type Report struct {
	Temp        int    `json:"temp"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	City        string `json:"city"`
}

// Client fetches current conditions for a fixed coordinate pair.
type Client struct {
	apiKey     string
	lat, lon   float64
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a weather client. An empty API key produces a
// client whose calls fail with ErrNotConfigured.
func NewClient(apiKey string, lat, lon float64) *Client {
	return &Client{
		apiKey:  apiKey,
		lat:     lat,
		lon:     lon,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Current fetches and simplifies the current weather.
func (c *Client) Current(ctx context.Context) (*Report, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.lat, 'f', 4, 64))
	q.Set("lon", strconv.FormatFloat(c.lon, 'f', 4, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	var payload struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}
	if len(payload.Weather) == 0 {
		return nil, fmt.Errorf("weather response missing conditions")
	}

	return &Report{
		Temp:        int(math.Round(payload.Main.Temp)),
		Description: payload.Weather[0].Description,
		Icon:        payload.Weather[0].Icon,
		City:        payload.Name,
	}, nil
}
