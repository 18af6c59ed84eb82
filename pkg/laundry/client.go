// Package laundry is the client-side core of the marketplace: a thin REST
// client plus the two role-scoped views built on it. Dashboard drives the
// owner's order lifecycle and notification acknowledgment; Tracker is the
// customer's read-only projection of the same orders. All status semantics
// come from pkg/lifecycle, so these views can never drift from the service.
package laundry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gofrs/uuid"

	"github.com/freshfold/laundry-service/pkg/lifecycle"
)

// Order is the wire representation of an order as the backend serves it.
type Order struct {
	ID            uuid.UUID        `json:"id"`
	ClientID      uuid.UUID        `json:"client_id"`
	OwnerID       uuid.UUID        `json:"owner_id"`
	CustomerName  string           `json:"customer_name"`
	Items         []Item           `json:"items"`
	TotalPrice    float64          `json:"total_price"`
	PaymentMethod string           `json:"payment_method"`
	Address       string           `json:"address"`
	Phone         string           `json:"phone,omitempty"`
	PickupTime    string           `json:"pickup_time"`
	Status        lifecycle.Status `json:"status"`
	EstimatedTime string           `json:"estimated_time,omitempty"`
	CreatedAt     time.Time        `json:"date"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Item is one order line.
type Item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Shop is a marketplace shop as listed on the home screen.
type Shop struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
}

// ShopService is one priced entry of a shop's price list.
type ShopService struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CreateOrderInput is the payload for placing a new order.
type CreateOrderInput struct {
	ClientID      uuid.UUID `json:"client_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	CustomerName  string    `json:"customer_name"`
	Items         []Item    `json:"items"`
	TotalPrice    float64   `json:"total_price"`
	PaymentMethod string    `json:"payment_method"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	PickupTime    string    `json:"pickup_time"`
}

// BackendError is a non-2xx response from the backend. It is always
// recoverable: callers surface it and may re-trigger the action manually.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Client talks to the laundry service. Safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, e.g. to set timeouts.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("laundry: failed to encode request body: %w", err)
		}
		reqBody = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("laundry: failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("laundry: request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		// Best effort: error bodies are JSON when the service produced
		// them, but proxies may answer with anything.
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err := json.Unmarshal(raw, &payload); err != nil || payload.Error == "" {
			payload.Error = string(bytes.TrimSpace(raw))
		}
		return &BackendError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("laundry: failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}

// Orders fetches every order, newest first.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrdersByOwner fetches one shop's orders, newest first.
func (c *Client) OrdersByOwner(ctx context.Context, ownerID uuid.UUID) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+ownerID.String(), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder places a new order and returns its store-assigned id.
func (c *Client) CreateOrder(ctx context.Context, input CreateOrderInput) (uuid.UUID, error) {
	var resp struct {
		OrderID uuid.UUID `json:"orderId"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", input, &resp); err != nil {
		return uuid.Nil, err
	}
	return resp.OrderID, nil
}

// UpdateOrderStatus requests a transition to the given status and returns the
// authoritative updated order from the service.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status lifecycle.Status, estimatedTime string) (*Order, error) {
	body := struct {
		Status        string `json:"status"`
		EstimatedTime string `json:"estimated_time,omitempty"`
	}{Status: status.String(), EstimatedTime: estimatedTime}

	var updated Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+orderID.String(), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// NotificationCount fetches the owner's unseen pending-order count.
func (c *Client) NotificationCount(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/notifications/"+ownerID.String(), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// MarkSeen acknowledges the owner's pending orders.
func (c *Client) MarkSeen(ctx context.Context, ownerID uuid.UUID) error {
	return c.do(ctx, http.MethodPut, "/orders/seen/"+ownerID.String(), nil, nil)
}

// Shops fetches all marketplace shops.
func (c *Client) Shops(ctx context.Context) ([]Shop, error) {
	var shops []Shop
	if err := c.do(ctx, http.MethodGet, "/shops", nil, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

// ServicesByOwner fetches one shop's price list.
func (c *Client) ServicesByOwner(ctx context.Context, ownerID uuid.UUID) ([]ShopService, error) {
	var services []ShopService
	if err := c.do(ctx, http.MethodGet, "/services/"+ownerID.String(), nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// ReplaceServices swaps a shop's whole price list.
func (c *Client) ReplaceServices(ctx context.Context, ownerID uuid.UUID, services []ShopService) error {
	body := struct {
		OwnerID  uuid.UUID     `json:"owner_id"`
		Services []ShopService `json:"services"`
	}{OwnerID: ownerID, Services: services}

	return c.do(ctx, http.MethodPost, "/services", body, nil)
}
