// Package walmart talks to the Walmart Marketplace API: it trades
// client credentials for a bearer token, searches the catalog, and
// simulates cart additions.
package walmart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mealforge/mealforge/internal/logger"
)

const (
	defaultBaseURL = "https://marketplace.walmartapis.com"

	// Fixed correlation/service headers required by the catalog API.
	correlationID = "1234567890"
	serviceName   = "Walmart Marketplace"
)

// ErrNoResults is returned when a catalog search matches no items.
var ErrNoResults = errors.New("no products found")

// Product is a single catalog hit.
type Product struct {
	Name   string `json:"name"`
	ItemID string `json:"itemId"`
	URL    string `json:"url"`
}

// Config holds client credentials and endpoint configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string // Override for tests; defaults to the marketplace API
	Timeout      time.Duration
}

// Client performs authenticated calls against the marketplace API.
// Tokens are short-lived and fetched fresh for every search; nothing
// is cached.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a marketplace client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("walmart client id and secret required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// AccessToken exchanges the configured client credentials for a
// short-lived bearer token.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.config.ClientID)
	form.Set("client_secret", c.config.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v3/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	return tok.AccessToken, nil
}

type searchResponse struct {
	Items []struct {
		Name       string `json:"name"`
		ItemID     string `json:"itemId"`
		ProductURL string `json:"productUrl"`
	} `json:"items"`
}

// SearchProduct queries the catalog for a text term and returns the
// first item of the response. The catalog's default ordering is the
// only ranking applied. A fresh token is fetched for every call.
func (c *Client) SearchProduct(ctx context.Context, query string) (Product, error) {
	if strings.TrimSpace(query) == "" {
		return Product{}, fmt.Errorf("search query must not be empty")
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return Product{}, fmt.Errorf("failed to get access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/v3/items", nil)
	if err != nil {
		return Product{}, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("WM_QOS.CORRELATION_ID", correlationID)
	req.Header.Set("WM_SVC.NAME", serviceName)

	q := req.URL.Query()
	q.Set("query", query)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Product{}, fmt.Errorf("catalog request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return Product{}, fmt.Errorf("catalog endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return Product{}, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	if len(search.Items) == 0 {
		return Product{}, fmt.Errorf("query %q: %w", query, ErrNoResults)
	}

	top := search.Items[0]
	logger.Debug("product found",
		"query", query,
		"name", top.Name,
		"item_id", top.ItemID)

	return Product{
		Name:   top.Name,
		ItemID: top.ItemID,
		URL:    top.ProductURL,
	}, nil
}
