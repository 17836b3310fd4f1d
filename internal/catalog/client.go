// Package catalog is the client for the external product catalog REST API.
// Every call is a single attempt with a bounded timeout; retrying is the
// caller's decision.
package catalog

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

	pkgerrors "github.com/storefrontlabs/storefront-api/pkg/errors"
	"github.com/storefrontlabs/storefront-api/pkg/metrics"
)

const (
	defaultBaseURL           = "https://fakestoreapi.com"
	defaultTimeout           = 30 * time.Second
	defaultListLimit         = 12
	errorBodyReadLimit int64 = 1024
)

// Client wraps the catalog API endpoints used by the storefront.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.CatalogMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured catalog base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout bounds every outbound request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithMetrics wires request metrics onto the client.
func WithMetrics(m *metrics.CatalogMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the catalog client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client
}

// ListProducts returns a window of the catalog. Non-positive limits fall back
// to the default page size; negative offsets clamp to zero.
func (c *Client) ListProducts(ctx context.Context, limit, offset int) ([]Product, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	var products []Product
	if err := c.getJSON(ctx, "list_products", "products", &products); err != nil {
		return nil, err
	}

	if offset >= len(products) {
		return []Product{}, nil
	}
	end := offset + limit
	if end > len(products) {
		end = len(products)
	}
	return products[offset:end], nil
}

// GetProduct fetches a single product by its canonical id.
func (c *Client) GetProduct(ctx context.Context, id ProductID) (*Product, error) {
	trimmed := strings.TrimSpace(id.String())
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	var product Product
	if err := c.getJSON(ctx, "get_product", "products/"+url.PathEscape(trimmed), &product); err != nil {
		return nil, err
	}
	if product.ID == "" {
		// The upstream answers missing ids with an empty 200 body.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": trimmed})
	}
	return &product, nil
}

// ListByCategory returns every product under the given category label.
func (c *Client) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}

	var products []Product
	if err := c.getJSON(ctx, "list_by_category", "products/category/"+url.PathEscape(trimmed), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories returns the catalog's category labels.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "list_categories", "products/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, dest any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "catalog client not configured")
	}

	start := time.Now()
	err := c.doGetJSON(ctx, path, dest)
	c.metrics.ObserveDuration(endpoint, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(endpoint)
		return err
	}
	c.metrics.IncSuccess(endpoint)
	return nil
}

func (c *Client) doGetJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return pkgerrors.Wrap(pkgerrors.CodeTimeout, err, "catalog request timed out")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute catalog request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(
			pkgerrors.CodeDependency,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"catalog request failed",
		).WithDetails(map[string]any{"status": resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read catalog response")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}
	return nil
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return false
}
