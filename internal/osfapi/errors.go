// Package osfapi provides a client for the Open Science Framework v2 API.
// It speaks JSON:API for metadata and the Waterbutler endpoints for file
// content, with error classification into sentinel errors.
package osfapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, osfapi.ErrNotFound) to check.
var (
	ErrBadRequest   = errors.New("osf: bad request")
	ErrUnauthorized = errors.New("osf: unauthorized")
	ErrForbidden    = errors.New("osf: forbidden")
	ErrNotFound     = errors.New("osf: not found")
	ErrConflict     = errors.New("osf: conflict")
	ErrThrottled    = errors.New("osf: throttled")
	ErrServerError  = errors.New("osf: server error")
)

// APIError wraps a sentinel error with the HTTP status code and the response
// body for debugging.
type APIError struct {
	StatusCode int
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	return fmt.Sprintf("osf: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for codes that carry no classification.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound, http.StatusGone:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}

// IsAuthFailure reports whether err is an authorization-kind failure (401 or
// 403). Callers use it to decide between "supply credentials" and
// "insufficient access" messaging.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
