package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Op names a remote operation for error reporting.
type Op string

const (
	OpList       Op = "list messages"
	OpListActive Op = "list active messages"
	OpCreate     Op = "create message"
	OpDelete     Op = "delete message"
	OpToggle     Op = "toggle message"
	OpStats      Op = "get stats"
)

// summary is the human-readable failure sentence for each operation.
var summary = map[Op]string{
	OpList:       "Failed to fetch messages",
	OpListActive: "Failed to fetch active messages",
	OpCreate:     "Failed to create message",
	OpDelete:     "Failed to delete message",
	OpToggle:     "Failed to toggle message status",
	OpStats:      "Failed to fetch statistics",
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Op         Op
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: server returned %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
}

// TransportError is returned when no usable response was obtained:
// connection failures, timeouts, cancellation or an undecodable body.
type TransportError struct {
	Op  Op
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStatusError reports whether err is (or wraps) a StatusError.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// IsTransportError reports whether err is (or wraps) a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// Describe normalises any failure from this package into one short sentence
// suitable for an error banner. Errors from elsewhere are returned verbatim.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var se *StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("%s (HTTP %d)", opSummary(se.Op), se.StatusCode)
	}

	var te *TransportError
	if errors.As(err, &te) {
		return fmt.Sprintf("%s: %v", opSummary(te.Op), te.Err)
	}

	return err.Error()
}

func opSummary(op Op) string {
	if s, ok := summary[op]; ok {
		return s
	}
	return "Request failed"
}
