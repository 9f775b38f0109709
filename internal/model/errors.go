package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure surfaced by a pipeline stage wraps exactly one of
// these so callers can branch with errors.Is.
var (
	ErrConfig    = errors.New("configuration error")
	ErrFetch     = errors.New("fetch error")
	ErrSummarize = errors.New("summarize error")
	ErrStateIO   = errors.New("state i/o error")
	ErrNotify    = errors.New("notify error")
)

// HTTPError wraps a non-success HTTP status code.
type HTTPError struct {
	StatusCode int
	Body       string // truncated response body, may be empty
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// NewHTTPError builds an HTTPError, keeping at most 512 bytes of body.
func NewHTTPError(status int, body []byte) *HTTPError {
	const max = 512
	if len(body) > max {
		body = body[:max]
	}
	return &HTTPError{StatusCode: status, Body: string(body)}
}
