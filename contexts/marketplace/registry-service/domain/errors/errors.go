package errors

import (
	"errors"
	"strings"
)

var (
	ErrNotFound             = errors.New("record not found")
	ErrInvalidPayload       = errors.New("invalid payload")
	ErrAuthenticationFailed = errors.New("caller is not the record owner")

	// Reserved for ledger integration; no registry operation returns these yet.
	ErrPaymentFailed    = errors.New("payment failed")
	ErrPaymentCompleted = errors.New("payment already completed")
)

// PayloadError carries every validation violation found in a submitted
// payload so callers can fix all input problems at once. It unwraps to
// ErrInvalidPayload for errors.Is dispatch.
type PayloadError struct {
	Violations []string
}

func (e *PayloadError) Error() string {
	return "invalid payload: " + strings.Join(e.Violations, "; ")
}

func (e *PayloadError) Unwrap() error {
	return ErrInvalidPayload
}

// ViolationsOf extracts aggregated validation messages from err, if any.
func ViolationsOf(err error) []string {
	var payloadErr *PayloadError
	if errors.As(err, &payloadErr) {
		return payloadErr.Violations
	}
	return nil
}
