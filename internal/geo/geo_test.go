package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestReverseGeocode verifies the display name comes back and the request
// carries the expected query parameters.
func TestReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "28.7045", r.URL.Query().Get("lat"))
		assert.Equal(t, "77.103", r.URL.Query().Get("lon"))
		w.Write([]byte(`{"display_name":"Gate 2, Sector 9, Rohini, Delhi"}`))
	}))
	defer srv.Close()

	got := NewClient(srv.URL).ReverseGeocode(context.Background(), 28.7045, 77.103)
	assert.Equal(t, "Gate 2, Sector 9, Rohini, Delhi", got)
}

// TestReverseGeocodeFallbacks verifies every failure path degrades to the
// formatted coordinate pair.
func TestReverseGeocodeFallbacks(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"empty display name", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"display_name":""}`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			got := NewClient(srv.URL).ReverseGeocode(context.Background(), 28.7045, 77.103)
			assert.Equal(t, "28.70450, 77.10300", got)
		})
	}

	t.Run("unreachable endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		got := NewClient(srv.URL).ReverseGeocode(context.Background(), -12.5, 130.8)
		assert.Equal(t, "-12.50000, 130.80000", got)
	})
}
