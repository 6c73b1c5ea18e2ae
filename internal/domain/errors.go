package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found, or an
	// operation was attempted against an entity in a state that no longer
	// permits it (the backend reports both the same way).
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing, invalid or expired token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller is authenticated but not allowed.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates a uniqueness or relationship violation, such as a
	// duplicate username or a category parented to itself.
	ErrConflict = errors.New("conflict")

	// ErrUnreachable indicates no response came back from the backend at all.
	ErrUnreachable = errors.New("backend unreachable")

	// ErrPaymentAborted indicates the buyer cancelled or the payment provider
	// reported a failure before capture completed.
	ErrPaymentAborted = errors.New("payment aborted")

	// ErrOrderRecordingFailed indicates the payment was captured but the
	// backend failed to record the order. Funds have moved; the cart must be
	// preserved and the buyer directed to support.
	ErrOrderRecordingFailed = errors.New("payment captured but order recording failed")
)

// ValidationError carries field-level messages from the backend so the caller
// can render them next to the offending control.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
