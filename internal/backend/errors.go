package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed covers every failed backend call: network errors,
	// non-2xx statuses and bodies that do not carry the expected fields.
	ErrRequestFailed = errors.New("backend request failed")

	// ErrUnexpectedResponse marks a 2xx response whose body is malformed or
	// lacks the field that confirms the operation.
	ErrUnexpectedResponse = errors.New("unexpected response body")
)

// RequestError describes a failed backend call.
type RequestError struct {
	Endpoint string
	Status   int    // 0 when no response was received
	Message  string // message or error field of the response body, if any
	Err      error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: status %d: %s: %v", e.Endpoint, e.Status, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: status %d: %v", e.Endpoint, e.Status, e.Err)
	}
}

// Unwrap lets errors.Is match both ErrRequestFailed and the cause.
func (e *RequestError) Unwrap() []error {
	return []error{ErrRequestFailed, e.Err}
}

// errStatus is the cause recorded for non-2xx responses.
var errStatus = errors.New("non-success status")
