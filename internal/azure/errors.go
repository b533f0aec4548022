package azure

import (
	"errors"
	"fmt"
)

// ErrTransport matches every failure of a completion round trip.
var ErrTransport = errors.New("transport failure")

// TransportError is returned by Client.Complete for network failures,
// non-2xx statuses and malformed bodies.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ParseError describes a response body that does not have the expected shape.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "parse response: " + e.Reason }
