// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// StatusMessages maps failure kinds to user facing sentences
var StatusMessages = map[Kind]string{
	KindNotFound:    "The user you're looking for doesn't exist or may have been deleted",
	KindRateLimited: "API rate limit exceeded. Please wait before searching again",
	KindTransport:   "Network connectivity issue. Please check your connection",
	KindUnknown:     "Something went wrong while talking to the API",
}

// Titles maps failure kinds to short panel headings
var Titles = map[Kind]string{
	KindNotFound:    "User Not Found",
	KindRateLimited: "Rate Limited",
	KindTransport:   "Network Error",
	KindUnknown:     "Request Failed",
}

type APIErrorResponse struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}

// ParseAPIError turns a non-2xx response into a classified error.
// header may be nil.
func ParseAPIError(statusCode int, header http.Header, body []byte) error {
	message := ""
	var apiErr APIErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil {
		message = apiErr.Message
	} else {
		message = strings.TrimSpace(string(body))
	}

	if isRateLimitResponse(statusCode, header, message) {
		return newRateLimitError(statusCode, header, message)
	}

	return createErrorFromStatusCode(statusCode, message)
}

func isRateLimitResponse(statusCode int, header http.Header, message string) bool {
	if statusCode == http.StatusTooManyRequests {
		return true
	}
	if statusCode != http.StatusForbidden {
		return false
	}
	if header != nil && header.Get("X-RateLimit-Remaining") == "0" {
		return true
	}
	return strings.Contains(strings.ToLower(message), "rate limit")
}

func newRateLimitError(statusCode int, header http.Header, message string) *RateLimitError {
	rl := &RateLimitError{
		StatusCode: statusCode,
		Message:    message,
	}
	if header == nil {
		return rl
	}
	if limit, err := strconv.Atoi(header.Get("X-RateLimit-Limit")); err == nil {
		rl.Limit = limit
	}
	if reset, err := strconv.ParseInt(header.Get("X-RateLimit-Reset"), 10, 64); err == nil && reset > 0 {
		rl.Reset = time.Unix(reset, 0)
	}
	return rl
}

func createErrorFromStatusCode(statusCode int, message string) error {
	kind := KindUnknown

	switch statusCode {
	case http.StatusNotFound:
		kind = KindNotFound
		if message == "" {
			message = "Not Found"
		}
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		kind = KindTransport
		if message == "" {
			message = StatusMessages[KindTransport]
		}
	default:
		if message == "" {
			message = fmt.Sprintf("Unexpected error (status %d)", statusCode)
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Message:    message,
		Kind:       kind,
	}
}

func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		if !rateLimitErr.Reset.IsZero() {
			return fmt.Sprintf("%s (resets at %s)", StatusMessages[KindRateLimited], rateLimitErr.Reset.Local().Format("15:04:05"))
		}
		return StatusMessages[KindRateLimited]
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "Request timed out. Please check your connection and try again."
		}
		return fmt.Sprintf("Network error: %v. Please check your connection and try again.", netErr.Err)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Kind == KindNotFound {
			return StatusMessages[KindNotFound]
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return apiErr.Error()
	}

	return err.Error()
}
