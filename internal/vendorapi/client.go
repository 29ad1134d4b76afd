// Copyright (c) 2024 Neomantra Corp

// Package vendorapi is the HTTP client for the upstream market-data
// vendor's two endpoints: the per-exchange symbol catalog and the
// per-instrument gzipped CSV tick archive.
package vendorapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/segmentio/encoding/json"
)

// Client wraps a retryablehttp.Client configured per §4.2.4's retry
// taxonomy: network/timeout errors and 5xx get exponential backoff, 429
// honors Retry-After, and 404 is never retried.
type Client struct {
	APIKey  string
	BaseURL string
	http    *retryablehttp.Client
}

// NewClient builds a Client whose checkRetry and backoff apply to catalog
// fetches and archive fetches alike, so both share one retry story;
// download/retry.go only classifies the terminal outcome of a fetch.
func NewClient(baseURL, apiKey string, timeout time.Duration, maxRetries int) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = maxRetries
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil
	rc.CheckRetry = checkRetry
	rc.Backoff = backoff
	return &Client{APIKey: apiKey, BaseURL: baseURL, http: rc}
}

// checkRetry never retries 404 (permanent, "no data") and otherwise defers
// to the library's default transient-error/5xx/429 policy.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// backoff honors Retry-After on 429, otherwise falls back to the library's
// exponential backoff with jitter.
func backoff(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := time.ParseDuration(ra + "s"); err == nil {
				return secs
			}
		}
	}
	return retryablehttp.DefaultBackoff(min, max, attemptNum, resp)
}

// ExchangeSymbol is one entry of the vendor's catalog response.
type ExchangeSymbol struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	AvailableSince string `json:"availableSince"`
	AvailableTo   string `json:"availableTo,omitempty"`
}

type catalogResponse struct {
	AvailableSymbols []ExchangeSymbol `json:"availableSymbols"`
}

// FetchCatalog retrieves the symbol catalog for one exchange.
func (c *Client) FetchCatalog(ctx context.Context, exchange string) ([]ExchangeSymbol, error) {
	url := fmt.Sprintf("%s/v1/exchanges/%s", c.BaseURL, exchange)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("vendorapi: build catalog request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vendorapi: catalog request for %s: %w", exchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("vendorapi: catalog for %s: status %d: %s", exchange, resp.StatusCode, string(body))
	}

	var parsed catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("vendorapi: decode catalog for %s: %w", exchange, err)
	}
	return parsed.AvailableSymbols, nil
}

// ErrNotFound is returned by FetchArchive for a 404 response — not an
// error per §7(iv), but signaled distinctly so callers can record it as
// "no data" rather than a failure.
var ErrNotFound = fmt.Errorf("vendorapi: archive not found")

// FetchArchive retrieves and gunzips one instrument's daily tick archive.
func (c *Client) FetchArchive(ctx context.Context, exchange, product string, date time.Time, symbol string) ([]byte, error) {
	url := fmt.Sprintf("%s/v1/%s/%s/%04d/%02d/%02d/%s.csv.gz",
		c.BaseURL, exchange, product, date.Year(), date.Month(), date.Day(), symbol)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("vendorapi: build archive request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vendorapi: archive request %s/%s/%s: %w", exchange, product, symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("vendorapi: archive %s/%s/%s: status %d: %s", exchange, product, symbol, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("vendorapi: read archive body: %w", err)
	}

	if isGzip(body) || resp.Header.Get("Content-Encoding") == "gzip" {
		gr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("vendorapi: gunzip archive: %w", err)
		}
		defer gr.Close()
		out, err := io.ReadAll(gr)
		if err != nil {
			return nil, fmt.Errorf("vendorapi: decompress archive: %w", err)
		}
		return out, nil
	}
	return body, nil
}

func isGzip(b []byte) bool {
	return len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b
}
