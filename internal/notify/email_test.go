package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEmailClientSend verifies the JSON payload and content type.
func TestEmailClientSend(t *testing.T) {
	var got EmailMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	client := NewEmailClient(srv.URL)
	require.NotNil(t, client)

	err := client.Send(context.Background(), EmailMessage{
		Username: "raj",
		Email:    "raj@example.com",
		Status:   "Resolved",
	})
	require.NoError(t, err)
	assert.Equal(t, "raj@example.com", got.Email)
	assert.Equal(t, "Resolved", got.Status)
}

// TestEmailClientSendFailure verifies non-2xx responses are errors.
func TestEmailClientSendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewEmailClient(srv.URL).Send(context.Background(), EmailMessage{})
	assert.ErrorContains(t, err, "502")
}

// TestNewEmailClientEmptyEndpoint verifies the disabled-channel shortcut.
func TestNewEmailClientEmptyEndpoint(t *testing.T) {
	assert.Nil(t, NewEmailClient(""))
}
