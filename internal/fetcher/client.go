package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	coinsPath       = "/coins"
	coinPath        = "/coin"
	statsPath       = "/stats"
	searchPath      = "/search-suggestions"
	historySegment  = "history"
	defaultBaseURL  = "https://api.coinranking.com/v2"
	defaultListSize = 100
)

// Options parameterise the pricing API client.
type Options struct {
	BaseURL           string
	APIKey            string
	ReferenceCurrency string
	Timeout           time.Duration
	UserAgent         string
}

// Client talks to the upstream pricing API.
type Client struct {
	opts    Options
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewClient constructs a pricing API client.
func NewClient(opts Options, logger zerolog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		opts:    opts,
		logger:  logger.With().Str("component", "pricing_client").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// ListCoins retrieves the first limit coins ordered by market cap.
func (c *Client) ListCoins(ctx context.Context, limit int) (*CoinsResponse, error) {
	if limit <= 0 {
		limit = defaultListSize
	}
	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", limit))

	var res CoinsResponse
	if err := c.getJSON(ctx, coinsPath, query, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListCoinsByIDs retrieves full coin rows for the given ids. An empty id
// list is answered locally with an empty response rather than a round trip.
func (c *Client) ListCoinsByIDs(ctx context.Context, ids []string) (*CoinsResponse, error) {
	if len(ids) == 0 {
		return &CoinsResponse{Data: &CoinsData{Coins: []*CoinDTO{}}}, nil
	}
	query := url.Values{}
	for _, id := range ids {
		query.Add("uuids[]", id)
	}

	var res CoinsResponse
	if err := c.getJSON(ctx, coinsPath, query, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetCoinDetails retrieves the detail payload for one coin.
func (c *Client) GetCoinDetails(ctx context.Context, id string) (*DetailsResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("coin id required")
	}

	var res DetailsResponse
	if err := c.getJSON(ctx, coinPath+"/"+url.PathEscape(id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetCoinHistory retrieves the price series for one coin over a period.
func (c *Client) GetCoinHistory(ctx context.Context, id, period string) (*HistoryResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("coin id required")
	}
	query := url.Values{}
	if period != "" {
		query.Set("timePeriod", period)
	}

	path := coinPath + "/" + url.PathEscape(id) + "/" + historySegment
	var res HistoryResponse
	if err := c.getJSON(ctx, path, query, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetGlobalStats retrieves global market aggregates.
func (c *Client) GetGlobalStats(ctx context.Context) (*StatsResponse, error) {
	var res StatsResponse
	if err := c.getJSON(ctx, statsPath, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SearchCoins retrieves search suggestions for a free-text query.
func (c *Client) SearchCoins(ctx context.Context, queryText string) (*SearchResponse, error) {
	query := url.Values{}
	query.Set("query", queryText)

	var res SearchResponse
	if err := c.getJSON(ctx, searchPath, query, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if c.opts.ReferenceCurrency != "" {
		if query == nil {
			query = url.Values{}
		}
		query.Set("referenceCurrencyUuid", c.opts.ReferenceCurrency)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(c.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "cointracker/1.0")
	}
	if c.opts.APIKey != "" {
		req.Header.Set("x-access-token", c.opts.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return parseHTTPError(resp.StatusCode, payload)
	}

	if len(payload) == 0 {
		return fmt.Errorf("pricing api returned empty body")
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode pricing response: %w", err)
	}
	return nil
}

type errorResponse struct {
	Status  string `json:"status"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func parseHTTPError(status int, payload []byte) error {
	var apiErr errorResponse
	if err := json.Unmarshal(payload, &apiErr); err == nil {
		if apiErr.Message != "" {
			return fmt.Errorf("pricing api error (%d): %s", status, apiErr.Message)
		}
		if apiErr.Type != "" {
			return fmt.Errorf("pricing api error (%d): %s", status, apiErr.Type)
		}
	}
	if len(payload) > 0 {
		return fmt.Errorf("pricing api error (%d): %s", status, strings.TrimSpace(string(payload)))
	}
	return fmt.Errorf("pricing api error (%d)", status)
}

var _ PricingAPI = (*Client)(nil)
