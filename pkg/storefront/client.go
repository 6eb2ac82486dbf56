// pkg/storefront/client.go
//
// Package storefront is the Go client for the storefront API. It keeps a
// local mirror of the catalog snapshot so UIs can render stock instantly, and
// applies checkout optimistically: stock is decremented locally before the
// server answers, kept when the order lands, and rolled back when it fails.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// APIError is a structured error decoded from the API response envelope.
type APIError struct {
	StatusCode int                    `json:"-"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// TimeoutError reports a request that did not complete in time. After a
// checkout timeout the caller cannot know whether the order was placed, so it
// is surfaced as its own kind instead of a generic transport failure.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.RWMutex
	mirror *Snapshot
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Refresh fetches the storefront snapshot and replaces the local mirror.
func (c *Client) Refresh(ctx context.Context) (*Snapshot, error) {
	var snapshot Snapshot
	if err := c.do(ctx, http.MethodGet, "/v1/storefront", nil, &snapshot); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.mirror = &snapshot
	c.mu.Unlock()

	return copySnapshot(&snapshot), nil
}

// Snapshot returns a copy of the current mirror, or nil before the first
// successful Refresh.
func (c *Client) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copySnapshot(c.mirror)
}

// PlaceOrder submits a checkout. The cart's stock is decremented in the
// mirror before the request goes out; a failed or timed-out request restores
// the previous state, and a successful one re-fetches the snapshot so the
// mirror reflects the server rather than the local estimate.
func (c *Client) PlaceOrder(ctx context.Context, req *OrderRequest) (*PlacedOrder, error) {
	c.mu.Lock()
	previous := copySnapshot(c.mirror)
	c.applyCartLocked(req.Items)
	c.mu.Unlock()

	var placed PlacedOrder
	err := c.do(ctx, http.MethodPost, "/v1/orders", req, &placed)
	if err != nil {
		c.mu.Lock()
		c.mirror = previous
		c.mu.Unlock()
		return nil, err
	}

	// The order stands either way; until a refresh succeeds the optimistic
	// mirror is the best available estimate.
	_, _ = c.Refresh(ctx)

	return &placed, nil
}

// CreatePaymentIntent opens a payment for a placed order and returns the
// client secret to drive the card form.
func (c *Client) CreatePaymentIntent(ctx context.Context, orderID string) (*PaymentIntent, error) {
	body := map[string]string{"order_id": orderID}

	var intent PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/v1/payments/intent", body, &intent); err != nil {
		return nil, err
	}

	return &intent, nil
}

// applyCartLocked decrements mirror stock for each cart line. Callers hold
// the write lock.
func (c *Client) applyCartLocked(lines []CartLine) {
	if c.mirror == nil {
		return
	}

	for _, line := range lines {
		for pi := range c.mirror.Products {
			product := &c.mirror.Products[pi]
			if product.ID != line.ProductID {
				continue
			}

			for vi := range product.Variants {
				variant := &product.Variants[vi]
				if variant.Size != line.Size {
					continue
				}
				variant.Stock -= line.Quantity
				if variant.Stock < 0 {
					variant.Stock = 0
				}
			}

			soldOut := true
			for _, v := range product.Variants {
				if v.Stock > 0 {
					soldOut = false
					break
				}
			}
			product.SoldOut = soldOut
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return &TimeoutError{Op: method + " " + path, Err: err}
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		apiErr := env.Error
		if apiErr == nil {
			apiErr = &APIError{Code: "UNKNOWN", Message: fmt.Sprintf("request failed with status %d", resp.StatusCode)}
		}
		apiErr.StatusCode = resp.StatusCode
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func copySnapshot(s *Snapshot) *Snapshot {
	if s == nil {
		return nil
	}

	out := &Snapshot{GeneratedAt: s.GeneratedAt}

	out.Products = make([]Product, len(s.Products))
	copy(out.Products, s.Products)
	for i := range out.Products {
		variants := make([]Variant, len(s.Products[i].Variants))
		copy(variants, s.Products[i].Variants)
		out.Products[i].Variants = variants

		images := make([]string, len(s.Products[i].Images))
		copy(images, s.Products[i].Images)
		out.Products[i].Images = images
	}

	out.Discounts = make([]Discount, len(s.Discounts))
	copy(out.Discounts, s.Discounts)

	if s.Config != nil {
		cfg := *s.Config
		cfg.FAQ = make([]FAQEntry, len(s.Config.FAQ))
		copy(cfg.FAQ, s.Config.FAQ)
		out.Config = &cfg
	}

	return out
}
