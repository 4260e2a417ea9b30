// ABOUTME: Error types for the request pipeline
// ABOUTME: Distinguishes transport failures from non-2xx backend responses

package api

import (
	"errors"
	"fmt"
)

// RequestError describes a failed backend request. StatusCode is zero for
// transport-level failures (DNS, connection refused, timeout) and the HTTP
// status for non-2xx responses.
type RequestError struct {
	StatusCode int
	Detail     string // backend "detail" message, or a synthesized description
	Err        error  // underlying transport error, if any
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Transport reports whether the failure happened before any HTTP response
// was received.
func (e *RequestError) Transport() bool {
	return e.StatusCode == 0
}

// StatusOf returns the HTTP status carried by err, or zero when err is not a
// *RequestError or is a transport failure.
func StatusOf(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

// DetailOf returns the user-facing message carried by err. Transport failures
// map to a generic message so connection internals never reach the end user.
func DetailOf(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Transport() {
			return "could not reach server"
		}
		return reqErr.Detail
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
