package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"
)

// TransportError reports a request that did not produce an HTTP response:
// connection failures, timeouts and cancelled contexts.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Timeout() {
		return fmt.Sprintf("api request %s %s timed out: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("api request %s %s failed: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a deadline rather than a
// connection problem.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// HTTPError reports a non-2xx response. Message is the server-provided
// message when one was found, otherwise a plain-text rendition of the body.
// Fields carries per-field validation messages keyed by field path.
type HTTPError struct {
	Status  int
	Message string
	Body    string
	Fields  map[string][]string
}

func (e *HTTPError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "API error (status %d)", e.Status)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for key := range e.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "; %s: %s", key, strings.Join(e.Fields[key], ", "))
		}
	}
	return b.String()
}

// errTrailingData marks a body holding more than one JSON value.
var errTrailingData = errors.New("unexpected data after JSON value")

// DecodeError reports a successful response whose body is not valid JSON.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("failed to parse API response as JSON: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse API response as JSON: %v. Response: %s", e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
