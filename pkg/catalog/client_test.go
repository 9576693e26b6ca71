package catalog_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/eliezer-r/storefront-platform/internal/config"
	"github.com/eliezer-r/storefront-platform/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is a map-backed cache.Cache for tests.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string, value any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.entries[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(data, value)
}

func (m *memoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = data

	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)

	return nil
}

func (m *memoryCache) Close() error { return nil }

func catalogConfig(baseURL string) config.Catalog {
	return config.Catalog{BaseURL: baseURL, Timeout: 2 * time.Second, CacheTTL: time.Minute}
}

func TestProducts(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("Success - Fetches And Decodes", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":1,"title":"Widget","price":17.5,"rating":{"rate":4.2,"count":9}}]`))
		}))
		defer server.Close()

		client := catalog.NewClient(catalogConfig(server.URL), nil, logger)

		// Act
		products, err := client.Products(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, int64(1), products[0].ID)
		assert.Equal(t, "Widget", products[0].Title)
		assert.InDelta(t, 4.2, products[0].Rating.Rate, 0.001)
	})

	t.Run("Success - Second Call Served From Cache", func(t *testing.T) {
		// Arrange
		var hits int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.Write([]byte(`[{"id":1,"title":"Widget","price":17.5}]`))
		}))
		defer server.Close()

		client := catalog.NewClient(catalogConfig(server.URL), newMemoryCache(), logger)

		// Act
		first, err1 := client.Products(ctx)
		second, err2 := client.Products(ctx)

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, hits)
	})

	t.Run("Failure - Upstream Error Status", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := catalog.NewClient(catalogConfig(server.URL), nil, logger)

		// Act
		products, err := client.Products(ctx)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, products)
	})

	t.Run("Failure - Unreachable Upstream", func(t *testing.T) {
		// Arrange
		client := catalog.NewClient(catalogConfig("http://127.0.0.1:1"), nil, logger)

		// Act
		_, err := client.Products(ctx)

		// Assert
		assert.Error(t, err)
	})

	t.Run("Success - Garbage Body Is An Error", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := catalog.NewClient(catalogConfig(server.URL), nil, logger)

		// Act
		_, err := client.Products(ctx)

		// Assert
		assert.Error(t, err)
	})
}
