package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EmailClient posts status-change messages to an external email service
// (an EmailJS-style JSON endpoint).
type EmailClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewEmailClient creates a client for the given endpoint. An empty endpoint
// yields nil so callers can pass the result straight to NewSink.
func NewEmailClient(endpoint string) *EmailClient {
	if endpoint == "" {
		return nil
	}
	return &EmailClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts the message as JSON. Any non-2xx response is an error; callers
// treat failures as log-only.
func (c *EmailClient) Send(ctx context.Context, msg EmailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}
	return nil
}
