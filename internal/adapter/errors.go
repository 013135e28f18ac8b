// internal/adapter/errors.go
package adapter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMalformedOutput marks helper output missing a mandatory field.
	ErrMalformedOutput = errors.New("adapter: malformed output")

	// ErrInvalidMetric marks a signal level that is not an integer.
	ErrInvalidMetric = errors.New("adapter: invalid metric")
)

// ReadError is returned when sampling the adapter fails.
type ReadError struct {
	Op    string // "read_active" | "scan"
	Field string // offending field, if any
	Err   error
}

func (e *ReadError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("adapter %s: field %s: %v", e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("adapter %s: %v", e.Op, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ConnectError is a transport-level join failure.
type ConnectError struct {
	SSID   string
	Output string
	Err    error
}

func (e *ConnectError) Error() string {
	msg := fmt.Sprintf("adapter connect %q", e.SSID)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConnectError) Unwrap() error { return e.Err }

// ParseLevel converts a textual dBm value to an int.
// Parsing at the boundary is permissive; this is the strict step.
func ParseLevel(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: signal level %q", ErrInvalidMetric, v)
	}
	return n, nil
}

func malformed(op, field string) error {
	return &ReadError{Op: op, Field: field, Err: ErrMalformedOutput}
}
