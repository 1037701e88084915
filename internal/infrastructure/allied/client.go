package allied

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appallied "github.com/mercado/backend/internal/application/allied"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/mercado/backend/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the allied feed (5MB)
const maxResponseSize = 5 * 1024 * 1024

// Client fetches the product feed published by an allied store. The feed is
// a paginated-looking envelope but the partner returns everything in one
// page.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new allied store client
func NewClient(cfg config.AlliedConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// feedEnvelope is the partner's response shape
type feedEnvelope struct {
	Count   int                 `json:"count"`
	Results []appallied.Product `json:"results"`
}

// FetchProducts fetches the allied store's available products
func (c *Client) FetchProducts(ctx context.Context) ([]appallied.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("allied: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// timeouts and connection failures are upstream unavailability
		return nil, fmt.Errorf("allied: %w: %v", shared.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("allied: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("allied: %w: HTTP %d from partner store", shared.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var envelope feedEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("allied: failed to decode response: %w", err)
	}

	if envelope.Results == nil {
		envelope.Results = []appallied.Product{}
	}
	return envelope.Results, nil
}

var _ appallied.Client = (*Client)(nil)
