package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Client is a Razorpay orders/payments API client using basic auth with
// the key id/secret pair.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

func NewClient(keyID, keySecret, baseURL string) (*Client, error) {
	if keyID == "" || keySecret == "" {
		return nil, &ConfigError{Reason: "missing key id or key secret"}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		http:      &http.Client{},
	}, nil
}

type gatewayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency string, captureImmediately bool, notes map[string]string) (string, error) {
	capture := 0
	if captureImmediately {
		capture = 1
	}
	payload := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"payment_capture": capture,
	}
	if len(notes) > 0 {
		payload["notes"] = notes
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/orders", payload, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) Capture(ctx context.Context, paymentID string, amountMinor int64, currency string) (string, error) {
	payload := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
	}
	var resp struct {
		ID string `json:"id"`
	}
	path := fmt.Sprintf("/payments/%s/capture", paymentID)
	if err := c.post(ctx, path, payload, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) Refund(ctx context.Context, paymentID string, amountMinor int64, notes map[string]string) (string, error) {
	payload := map[string]interface{}{
		"amount": amountMinor,
	}
	if len(notes) > 0 {
		payload["notes"] = notes
	}
	var resp struct {
		ID string `json:"id"`
	}
	path := fmt.Sprintf("/payments/%s/refund", paymentID)
	if err := c.post(ctx, path, payload, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return &ConfigError{Reason: "gateway rejected credentials"}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var gerr gatewayError
		if err := json.Unmarshal(data, &gerr); err == nil && gerr.Error.Description != "" {
			return &RejectedError{Description: gerr.Error.Description}
		}
		return &RejectedError{Description: fmt.Sprintf("gateway error (%d): %s", resp.StatusCode, string(data))}
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse gateway response: %w", err)
		}
	}
	return nil
}
