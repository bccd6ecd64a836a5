// Package provider is the HTTP client for the card payment provider.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnreachable wraps transport-level failures, including timeouts. A timed
// out refund call is a failure, never an implicit success.
var ErrUnreachable = errors.New("payment provider unreachable")

// Intent is a payment intent as the provider reports it.
type Intent struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata"`
}

// Charge is a captured charge attached to an intent.
type Charge struct {
	ID       string `json:"id"`
	IntentID string `json:"payment_intent"`
	Amount   int64  `json:"amount"`
	Refunded bool   `json:"refunded"`
	Status   string `json:"status"`
}

// Refund is the provider's record of a refund.
type Refund struct {
	ID       string `json:"id"`
	ChargeID string `json:"charge"`
	Amount   int64  `json:"amount"`
	Status   string `json:"status"`
}

// Client talks to the provider REST API. Every call is bounded by the
// configured timeout via context.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// RetrieveIntent fetches a payment intent by its provider id.
// GET /v1/payment_intents/:id
func (c *Client) RetrieveIntent(ctx context.Context, intentID string) (*Intent, error) {
	var out Intent
	if err := c.do(ctx, http.MethodGet, "/v1/payment_intents/"+intentID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCharges fetches the charges belonging to an intent.
// GET /v1/charges?payment_intent=:id
func (c *Client) ListCharges(ctx context.Context, intentID string) ([]Charge, error) {
	var out struct {
		Data []Charge `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/charges?payment_intent="+intentID, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateRefund issues a refund against a charge for the given amount.
// POST /v1/refunds
func (c *Client) CreateRefund(ctx context.Context, chargeID string, amount int64) (*Refund, error) {
	body := map[string]interface{}{
		"charge": chargeID,
		"amount": amount,
	}
	var out Refund
	if err := c.do(ctx, http.MethodPost, "/v1/refunds", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
