// Package catalog fetches the external read-only product catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/eliezer-r/storefront-platform/internal/cache"
	"github.com/eliezer-r/storefront-platform/internal/config"
	"github.com/eliezer-r/storefront-platform/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Client struct {
	baseURL    string
	cacheTTL   time.Duration
	httpClient *http.Client
	cache      cache.Cache
	logger     *slog.Logger
}

// NewClient builds a catalog client. The cache is optional; pass nil to hit
// the upstream on every call.
func NewClient(cfg config.Catalog, c cache.Cache, logger *slog.Logger) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		cacheTTL: cfg.CacheTTL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cache:  c,
		logger: logger,
	}
}

// Products returns the full catalog listing. Cache problems degrade to a
// direct fetch; only an upstream failure is an error.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	cacheKey := cache.Key(cache.CatalogKeyPrefix, "products")

	if c.cache != nil {
		var cached []models.Product

		found, err := c.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			c.logger.Warn("Catalog cache read failed", slog.Any("error", err))
		} else if found {
			return cached, nil
		}
	}

	products, err := c.fetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, products, c.cacheTTL); err != nil {
			c.logger.Warn("Catalog cache write failed", slog.Any("error", err))
		}
	}

	return products, nil
}

func (c *Client) fetchProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog responded with status %d", resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return products, nil
}
