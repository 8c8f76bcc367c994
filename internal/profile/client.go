package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const httpTimeout = 5 * time.Second

// Client fetches profiles from the profile service over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a profile client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: baseURL,
	}
}

// GetProfile implements Source. A 404 from the profile service maps to
// (nil, nil): a missing profile is not an error.
func (c *Client) GetProfile(ctx context.Context, identityID string) (*Profile, error) {
	endpoint := fmt.Sprintf("%s/profiles/%s", c.baseURL, url.PathEscape(identityID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GET %s: status %d: %s", endpoint, resp.StatusCode, body)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile for %s: %w", identityID, err)
	}
	return &p, nil
}
