package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"catalog-import-service/internal/models"
)

// CatalogClient handles communication with the catalog service
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Entry
}

// CatalogClientConfig configures a CatalogClient
type CatalogClientConfig struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is the maximum requests per second; zero or less disables throttling
	RateLimit float64
	Burst     int
}

// UserContext holds the caller identity forwarded to the catalog service
type UserContext struct {
	TenantID  string
	UserID    string
	UserEmail string
}

type userContextKey struct{}

// WithUserContext attaches the caller identity to ctx
func WithUserContext(ctx context.Context, uc UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, uc)
}

// UserContextFrom returns the caller identity attached to ctx, if any
func UserContextFrom(ctx context.Context) (UserContext, bool) {
	uc, ok := ctx.Value(userContextKey{}).(UserContext)
	return uc, ok
}

// envelope is the catalog service's response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message *string         `json:"message,omitempty"`
	Error   *models.Error   `json:"error,omitempty"`
}

// NewCatalogClient creates a new catalog client
func NewCatalogClient(cfg CatalogClientConfig, logger *logrus.Entry) *CatalogClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://catalog-service:8080"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &CatalogClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.WithField("component", "catalog_client"),
	}
}

// ListCategories returns the category tree
func (c *CatalogClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/v1/categories?tree=true", nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	c.logger.Debugf("Loaded %d root categories", len(categories))
	return categories, nil
}

// ListUnits returns every unit of measure
func (c *CatalogClient) ListUnits(ctx context.Context) ([]models.Unit, error) {
	var units []models.Unit
	if err := c.do(ctx, http.MethodGet, "/api/v1/units", nil, &units); err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	c.logger.Debugf("Loaded %d units", len(units))
	return units, nil
}

// ListProducts returns one page of products
func (c *CatalogClient) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	q := url.Values{}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}

	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/v1/products?"+q.Encode(), nil, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	c.logger.Debugf("Loaded %d products", len(products))
	return products, nil
}

// CreateProduct creates a product; the catalog creates its default unit
func (c *CatalogClient) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/api/v1/products", req, &product); err != nil {
		return nil, err
	}
	if product.ID == "" {
		return nil, fmt.Errorf("catalog returned a product without id")
	}
	return &product, nil
}

// UpdateProduct applies a partial update
func (c *CatalogClient) UpdateProduct(ctx context.Context, productID string, req models.UpdateProductRequest) error {
	return c.do(ctx, http.MethodPatch, "/api/v1/products/"+url.PathEscape(productID), req, nil)
}

// ListProductUnits returns a product's units in catalog order
func (c *CatalogClient) ListProductUnits(ctx context.Context, productID string) ([]models.ProductUnit, error) {
	var units []models.ProductUnit
	if err := c.do(ctx, http.MethodGet, "/api/v1/products/"+url.PathEscape(productID)+"/units", nil, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// CreateProductUnit attaches a unit to a product
func (c *CatalogClient) CreateProductUnit(ctx context.Context, productID string, req models.CreateProductUnitRequest) (*models.ProductUnit, error) {
	var unit models.ProductUnit
	if err := c.do(ctx, http.MethodPost, "/api/v1/products/"+url.PathEscape(productID)+"/units", req, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

// do sends one request and decodes the envelope's data into out (if non-nil)
func (c *CatalogClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if uc, ok := UserContextFrom(ctx); ok {
		if uc.TenantID != "" {
			req.Header.Set("X-Tenant-ID", uc.TenantID)
		}
		if uc.UserID != "" {
			req.Header.Set("X-User-ID", uc.UserID)
		}
		if uc.UserEmail != "" {
			req.Header.Set("X-User-Email", uc.UserEmail)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Errorf("Error calling catalog API %s %s", method, path)
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warnf("Catalog API %s %s returned %d: %s", method, path, resp.StatusCode, string(respBody))
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// StatusError is returned for non-2xx catalog responses
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog returned %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog returned %d: %s", e.StatusCode, e.Message)
}

// errorMessage extracts a readable message from an error body
func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != nil && env.Error.Message != "" {
			return env.Error.Message
		}
		if env.Message != nil && *env.Message != "" {
			return *env.Message
		}
	}
	return strings.TrimSpace(string(body))
}
