// Package polymarket provides a client for Polymarket's Gamma API.
// It serves two callers: the relay handlers, which forward query
// parameters verbatim and pass the raw JSON body through, and the viewer,
// which wants normalized records.
package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/lucasreis/polyview/internal/models"
)

// DefaultBaseURL is the Gamma API endpoint.
const DefaultBaseURL = "https://gamma-api.polymarket.com"

// Options configures the outbound HTTP client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

// Client provides access to the Gamma API.
type Client struct {
	http *resty.Client
}

// NewClient creates a new Gamma API client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Client{
		http: resty.New().
			SetBaseURL(opts.BaseURL).
			SetTimeout(opts.Timeout).
			SetRetryCount(opts.RetryCount).
			SetRetryWaitTime(1 * time.Second),
	}
}

// Forward issues a GET to the upstream path with the given query parameters
// and returns the response body verbatim, after checking it is JSON. The
// relay layer writes this straight back to the browser.
func (c *Client) Forward(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	log.Debug().
		Str("path", path).
		Str("params", params.Encode()).
		Msg("Proxying request to Gamma API")

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get(path)

	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned invalid JSON (status %d)", resp.StatusCode())
	}

	return json.RawMessage(body), nil
}

// OpenMarkets fetches up to limit open markets, normalized.
func (c *Client) OpenMarkets(ctx context.Context, limit int) ([]models.Market, error) {
	params := url.Values{}
	params.Set("closed", "false")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get("/markets")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch markets: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("markets API returned %d: %s", resp.StatusCode(), resp.String())
	}

	markets, err := models.DecodeMarkets(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to parse markets: %w", err)
	}

	log.Debug().
		Int("count", len(markets)).
		Msg("Fetched markets")

	return markets, nil
}

// MarketByID fetches a single market, normalized.
func (c *Client) MarketByID(ctx context.Context, id string) (*models.Market, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/markets/" + url.PathEscape(id))

	if err != nil {
		return nil, fmt.Errorf("failed to fetch market: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("market API returned %d: %s", resp.StatusCode(), resp.String())
	}

	market, err := models.DecodeMarket(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to parse market: %w", err)
	}

	return market, nil
}
