// Package geo resolves coordinates to human-readable addresses through a
// nominatim-style reverse geocoding endpoint.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public OpenStreetMap nominatim endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Client calls the reverse geocoding service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geocoding client. An empty baseURL selects the public
// endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ReverseGeocode returns an address string for the coordinates. Every
// failure path degrades to the formatted coordinate pair; no error is
// returned.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) string {
	fallback := fmt.Sprintf("%.5f, %.5f", lat, lng)
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return fallback
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithField("error", err.Error()).Debug("Reverse geocode failed")
		return fallback
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fallback
	}
	var payload struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.DisplayName == "" {
		return fallback
	}
	return payload.DisplayName
}
