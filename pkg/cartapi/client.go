// Package cartapi is the HTTP client for the storefront's cart endpoints. It
// satisfies the cart engine's RemoteCart interface so the client-side machine
// can run against a live server.
package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/eliezer-r/storefront-platform/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a client for the given server. The bearer token scopes
// every call to one user's cart.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// SetToken swaps the bearer token, e.g. after a fresh login.
func (c *Client) SetToken(token string) {
	c.token = token
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer

	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		if env.Error != nil {
			return fmt.Errorf("server rejected %s %s: %s (%s)", method, path, env.Error.Message, env.Error.Code)
		}

		return fmt.Errorf("server rejected %s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

func (c *Client) List(ctx context.Context) ([]models.CartRow, error) {
	var resp models.CartResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/cart", nil, &resp); err != nil {
		return nil, err
	}

	return resp.CartItems, nil
}

func (c *Client) Add(ctx context.Context, row models.CartRow) error {
	req := models.AddCartItemRequest{
		ProductID: row.ProductID,
		Quantity:  row.Quantity,
		Price:     row.Price,
	}

	return c.do(ctx, http.MethodPost, "/api/v1/cart/items", req, nil)
}

func (c *Client) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	req := models.UpdateCartQuantityRequest{Quantity: quantity}
	path := fmt.Sprintf("/api/v1/cart/items/%d", productID)

	return c.do(ctx, http.MethodPatch, path, req, nil)
}

func (c *Client) Remove(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/api/v1/cart/items/%d", productID)

	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) Clear(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/cart", nil, nil)
}

func (c *Client) ReplaceAll(ctx context.Context, rows []models.CartRow) error {
	req := models.ReplaceCartRequest{Items: make([]models.ReplaceCartItem, 0, len(rows))}
	for _, row := range rows {
		req.Items = append(req.Items, models.ReplaceCartItem{
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			Price:     row.Price,
		})
	}

	return c.do(ctx, http.MethodPut, "/api/v1/cart", req, nil)
}
