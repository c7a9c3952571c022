// Package notify sends customer-facing messages through the transactional
// mail/WhatsApp API. Sends are best-effort: callers log failures and move
// on, they never retry or fail the main flow over a message.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

type Template string

const (
	TemplateDispatch      Template = "dispatch"
	TemplateCancellation  Template = "cancellation"
	TemplateRefund        Template = "refund"
	TemplateInternalAlert Template = "internal_alert"
)

type Sender interface {
	Send(ctx context.Context, tpl Template, recipient string, data map[string]string) error
}

// HTTPSender posts template sends to the configured messaging API.
type HTTPSender struct {
	apiURL string
	apiKey string
	http   *http.Client
}

func NewHTTPSender(apiURL, apiKey string) *HTTPSender {
	return &HTTPSender{apiURL: apiURL, apiKey: apiKey, http: &http.Client{}}
}

func (s *HTTPSender) Send(ctx context.Context, tpl Template, recipient string, data map[string]string) error {
	payload := map[string]interface{}{
		"template":  string(tpl),
		"recipient": recipient,
		"data":      data,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("send %s to %s: %w", tpl, recipient, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("send %s to %s: status %d: %s", tpl, recipient, resp.StatusCode, string(msg))
	}
	return nil
}

// LogSender is the fallback when no messaging API is configured; it just
// logs what would have been sent.
type LogSender struct{}

func (LogSender) Send(_ context.Context, tpl Template, recipient string, data map[string]string) error {
	log.Printf("notify (dry-run): template=%s recipient=%s data=%v", tpl, recipient, data)
	return nil
}
