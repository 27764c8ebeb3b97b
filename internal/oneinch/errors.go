package oneinch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAPIKeyMissing indicates no API key was supplied explicitly or through
// the environment. Construction fails fast on it; it is never surfaced
// mid-operation.
var ErrAPIKeyMissing = errors.New("1inch API key is not configured")

// ErrorMeta is one metadata entry attached to a structured API error.
type ErrorMeta struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// APIError is a structured error body returned by the 1inch API, classified
// into one shape by Classify. It is constructed once per failed call and
// returned to the caller, never persisted.
type APIError struct {
	// StatusCode is the HTTP status of the failed response.
	StatusCode int
	// Code is the machine-readable error label ("Bad Request",
	// "insufficient liquidity", ...).
	Code string
	// Description is the human-readable detail, when present.
	Description string
	// RequestID correlates the failure with the remote service's logs.
	RequestID string
	// Meta carries optional typed key/value diagnostics.
	Meta []ErrorMeta
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "1inch api error (status %d)", e.StatusCode)
	if e.Code != "" {
		fmt.Fprintf(&b, ": %s", e.Code)
	}
	if e.Description != "" && e.Description != e.Code {
		fmt.Fprintf(&b, ": %s", e.Description)
	}
	if e.RequestID != "" {
		fmt.Fprintf(&b, " (request %s)", e.RequestID)
	}
	return b.String()
}

// RawResponseError wraps a failed response whose body matched none of the
// known error shapes. The body is preserved verbatim for debugging.
type RawResponseError struct {
	StatusCode int
	Body       []byte
}

func (e *RawResponseError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("1inch api error (status %d): empty response body", e.StatusCode)
	}
	return fmt.Sprintf("1inch api error (status %d): %s", e.StatusCode, body)
}
