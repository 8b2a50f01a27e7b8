package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/shopcore/internal/client/models"
)

const defaultTimeout = 10 * time.Second

// HTTPClient implements Provider against a JSON-over-HTTP backend:
// GET {base}/products?offset=N&limit=M returning a JSON array of products.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

// NewHTTPClient returns an HTTPClient bound to the given base URL.
// A non-positive timeout falls back to the 10 s default.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) FetchPage(ctx context.Context, offset, limit int) ([]models.Product, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	reqURL := fmt.Sprintf("%s/products?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errorMessage(resp))
	}

	var items []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode product page: %w", err)
	}
	return items, nil
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// errorMessage extracts the backend's {"message": ...} payload from an
// error response, falling back to the HTTP status line.
func errorMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	return fmt.Sprintf("unexpected status: %s", resp.Status)
}
