package client

import (
	"errors"
	"fmt"
)

// ErrNullBody is returned when upstream answers 200 with a JSON null, which
// the item API does for unknown or deleted items.
var ErrNullBody = errors.New("upstream returned null")

// ErrorClass represents a classification of upstream errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents transport errors and timeouts.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents unreadable or malformed payloads.
	ErrorClassDecode ErrorClass = "decode"
)

// UpstreamError describes a failed upstream request.
type UpstreamError struct {
	StatusCode int
	Class      ErrorClass
	URL        string
	Err        error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s error (status %d) for %s: %v",
			e.Class, e.StatusCode, e.URL, e.Err)
	}
	return fmt.Sprintf("upstream %s error for %s: %v", e.Class, e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to an error class.
// Returns "" for non-error statuses.
func classifyStatus(status int) ErrorClass {
	switch {
	case status >= 500:
		return ErrorClassServer
	case status >= 400:
		return ErrorClassClient
	default:
		return ""
	}
}
