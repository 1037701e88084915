package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mercado/backend/internal/application/currency"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/mercado/backend/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the rate API (1MB)
const maxResponseSize = 1 * 1024 * 1024

// Client fetches exchange rates from the ExchangeRate-API service.
// A request hits {baseURL}/{base} and yields every known rate for that base.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new exchange rate client
func NewClient(cfg config.ExchangeConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.APIURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ratesEnvelope is the upstream response shape
type ratesEnvelope struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRates fetches all exchange rates for a base currency
func (c *Client) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("exchange: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// timeouts and connection failures are upstream unavailability
		return nil, fmt.Errorf("exchange: %w: %v", shared.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("exchange: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("exchange: %w: HTTP %d from rate API", shared.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var envelope ratesEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("exchange: failed to decode response: %w", err)
	}
	if len(envelope.Rates) == 0 {
		return nil, fmt.Errorf("exchange: empty rates for base %s", base)
	}

	return envelope.Rates, nil
}

var _ currency.RateProvider = (*Client)(nil)
