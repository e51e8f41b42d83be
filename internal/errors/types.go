// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"
)

// Kind is the failure classification surfaced to the finder state machines
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindRateLimited
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindRateLimited:
		return "rate-limited"
	case KindTransport:
		return "transport-error"
	default:
		return "unknown"
	}
}

type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Kind       Kind
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("API error: %s (status %d)", e.Status, e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode || e.Kind == t.Kind
}

type NetworkError struct {
	Err       error
	Operation string
	URL       string
}

func (e *NetworkError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying failure was a deadline
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

type RateLimitError struct {
	StatusCode int
	Limit      int
	Reset      time.Time
	Message    string
}

func (e *RateLimitError) Error() string {
	if !e.Reset.IsZero() {
		return fmt.Sprintf("rate limit exceeded, resets at %s", e.Reset.Local().Format("15:04:05"))
	}
	if e.Message != "" {
		return fmt.Sprintf("rate limit exceeded: %s", e.Message)
	}
	return "rate limit exceeded"
}

type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

var (
	ErrEmptyHandle = &ValidationError{Field: "handle", Message: "cannot be empty"}
	ErrEmptyQuery  = &ValidationError{Field: "query", Message: "cannot be empty"}
	ErrInvalidPage = &ValidationError{Field: "page", Message: "must be a positive integer"}
)

// KindOf classifies any error returned by the API client
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case IsNotFound(err):
		return KindNotFound
	case IsRateLimited(err):
		return KindRateLimited
	case IsNetworkError(err):
		return KindTransport
	default:
		return KindUnknown
	}
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return rateLimitErr.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindNotFound || apiErr.StatusCode == 404
	}

	return false
}

func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindRateLimited || apiErr.StatusCode == 429
	}

	return false
}

func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var ne net.Error
	return errors.As(err, &ne)
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
