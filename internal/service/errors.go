package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound                 = errors.New("not_found")
	ErrInvalidAmount            = errors.New("invalid_amount")
	ErrAlreadyCaptured          = errors.New("already_captured")
	ErrAlreadyConverted         = errors.New("already_converted")
	ErrInvalidCancellationToken = errors.New("invalid_cancellation_token")
	ErrFeeExceedsTotal          = errors.New("fee_exceeds_total")
)

// PartialFailureError means the fee capture succeeded but the follow-up
// refund did not. The order is left fee_charged and the operator has to
// reconcile the refund manually, so the error carries everything needed
// to do that.
type PartialFailureError struct {
	OrderRef    string
	FeeCaptured decimal.Decimal
	RefundDue   decimal.Decimal
	Cause       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("order %s: fee %s captured but refund of %s failed: %v",
		e.OrderRef, e.FeeCaptured.StringFixed(2), e.RefundDue.StringFixed(2), e.Cause)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Cause
}
