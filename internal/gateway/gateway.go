// Package gateway talks to the card payment provider. Amounts are always
// integer minor units (paise); callers round before reaching this package.
package gateway

import "context"

// Gateway is the narrow surface the lifecycle service needs: create an
// order (hold or immediate charge), capture a payment, refund a payment.
// No retries anywhere; a failed call surfaces immediately to the caller.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency string, captureImmediately bool, notes map[string]string) (string, error)
	Capture(ctx context.Context, paymentID string, amountMinor int64, currency string) (string, error)
	Refund(ctx context.Context, paymentID string, amountMinor int64, notes map[string]string) (string, error)
}

// ConfigError means credentials are missing or invalid. Not retryable;
// an operator has to fix the deployment.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "gateway configuration: " + e.Reason
}

// RejectedError carries the provider's error description verbatim so the
// operator sees exactly what the gateway said.
type RejectedError struct {
	Description string
}

func (e *RejectedError) Error() string {
	return e.Description
}
