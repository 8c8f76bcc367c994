package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const httpTimeout = 5 * time.Second

// Client triggers workflows over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a workflow client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: baseURL,
	}
}

// HighIntent implements Trigger.
func (c *Client) HighIntent(ctx context.Context, identityID string) error {
	return c.post(ctx, "/workflows/high-intent", identityID)
}

// MediumIntent implements Trigger.
func (c *Client) MediumIntent(ctx context.Context, identityID string) error {
	return c.post(ctx, "/workflows/medium-intent", identityID)
}

func (c *Client) post(ctx context.Context, path, identityID string) error {
	body, err := json.Marshal(map[string]string{"identity_id": identityID})
	if err != nil {
		return fmt.Errorf("marshal trigger body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build trigger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, data)
	}
	return nil
}
