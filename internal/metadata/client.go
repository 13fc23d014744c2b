// Package metadata resolves token display metadata (name, symbol, icon,
// decimals) from the Solscan HTTP API, caching results so batch reads never
// block on a slow or failing upstream.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/logger"
	"solana-batch-auction/internal/observability"
)

// Default configuration values.
const (
	DefaultBaseURL    = "https://pro-api.solscan.io/v1.0"
	DefaultTimeout    = 5 * time.Second
	DefaultMaxRetries = 2
	DefaultRetryDelay = 200 * time.Millisecond
	DefaultCacheTTL   = 15 * time.Minute
	DefaultCacheSize  = 1024
)

// Client fetches token metadata over HTTP with a bounded TTL cache. Lookups
// never fail: any upstream problem yields a cached placeholder so a single
// bad token cannot break an enriched read.
type Client struct {
	baseURL    string
	apiKey     string
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
	cache      *cache
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithBaseURL sets the metadata API base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithCache sets the cache TTL and entry bound.
func WithCache(ttl time.Duration, maxEntries int) ClientOption {
	return func(c *Client) {
		c.cache = newCache(ttl, maxEntries)
	}
}

// NewClient creates a new metadata client. An empty apiKey disables fetching
// entirely; every lookup then resolves to a placeholder.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		client:     &http.Client{Timeout: DefaultTimeout},
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		cache:      newCache(DefaultCacheTTL, DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup resolves metadata for one mint address. Failures degrade to a
// placeholder entry which is cached like a real one.
func (c *Client) Lookup(ctx context.Context, address string) domain.TokenMetadata {
	if meta, ok := c.cache.get(address); ok {
		observability.RecordMetadataCacheHit()
		return meta
	}
	observability.RecordMetadataCacheMiss()

	meta, err := c.fetch(ctx, address)
	if err != nil {
		logger.Warnf("token metadata fetch failed for %s: %v", address, err)
		meta = domain.Placeholder(address)
	}

	c.cache.put(meta)
	return meta
}

// Multi resolves metadata for a set of mint addresses, deduplicating as it
// goes. The result has an entry for every input address.
func (c *Client) Multi(ctx context.Context, addresses []string) map[string]domain.TokenMetadata {
	result := make(map[string]domain.TokenMetadata, len(addresses))
	for _, addr := range addresses {
		if addr == "" {
			continue
		}
		if _, done := result[addr]; done {
			continue
		}
		result[addr] = c.Lookup(ctx, addr)
	}
	return result
}

// tokenMetaResponse mirrors the Solscan token/meta payload.
type tokenMetaResponse struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Icon     string `json:"icon"`
	Decimals int    `json:"decimals"`
}

// fetch performs the metadata request with limited retries.
func (c *Client) fetch(ctx context.Context, address string) (domain.TokenMetadata, error) {
	start := time.Now()
	meta, err := c.fetchWithRetries(ctx, address)
	observability.RecordMetadataFetch(time.Since(start).Seconds(), err)
	return meta, err
}

func (c *Client) fetchWithRetries(ctx context.Context, address string) (domain.TokenMetadata, error) {
	if c.apiKey == "" {
		return domain.TokenMetadata{}, fmt.Errorf("no api key configured")
	}

	endpoint := fmt.Sprintf("%s/token/meta?tokenAddress=%s", c.baseURL, url.QueryEscape(address))

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return domain.TokenMetadata{}, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return domain.TokenMetadata{}, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("token", c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
			continue
		}

		var parsed tokenMetaResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			lastErr = fmt.Errorf("unmarshal response: %w", err)
			continue
		}

		return domain.TokenMetadata{
			Address:  address,
			Name:     parsed.Name,
			Symbol:   parsed.Symbol,
			Icon:     parsed.Icon,
			Decimals: parsed.Decimals,
		}, nil
	}

	return domain.TokenMetadata{}, fmt.Errorf("max retries exceeded: %w", lastErr)
}
