package rtbhouse

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies errors returned by the client so callers can decide
// whether to retry, re-authenticate or give up.
type ErrorKind int

const (
	// KindInvalidParameter indicates a client-side validation failure.
	// No request was sent.
	KindInvalidParameter ErrorKind = iota
	// KindAuthentication indicates a 401/403 response.
	KindAuthentication
	// KindNotFound indicates a 404 response, e.g. an unknown advertiser.
	KindNotFound
	// KindInvalidRequest indicates a 400/422 (or other 4xx) response.
	KindInvalidRequest
	// KindRateLimited indicates a 429 response.
	KindRateLimited
	// KindServerError indicates a 5xx response.
	KindServerError
	// KindVersionMismatch indicates a 410 response: the API version used by
	// this SDK is no longer supported.
	KindVersionMismatch
	// KindTransport indicates a network-level failure (timeout, connection
	// reset, DNS) before any HTTP status was received.
	KindTransport
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidParameter:
		return "invalid parameter"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not found"
	case KindInvalidRequest:
		return "invalid request"
	case KindRateLimited:
		return "rate limited"
	case KindServerError:
		return "server error"
	case KindVersionMismatch:
		return "api version mismatch"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// ParameterError reports an invalid call argument. It is always raised before
// any network traffic happens.
type ParameterError struct {
	Param  string
	Reason string
}

// Error implements the error interface.
func (e *ParameterError) Error() string {
	return fmt.Sprintf("rtbhouse: invalid parameter %q: %s", e.Param, e.Reason)
}

// ErrorDetails carries the structured error body the API returns on 4xx/5xx.
type ErrorDetails struct {
	AppCode string         `json:"appCode"`
	Message string         `json:"message"`
	Errors  map[string]any `json:"errors"`
}

// ResourceUsage maps metric -> time span -> limit -> used, as reported by the
// X-Resource-Usage header on 429 responses.
type ResourceUsage map[string]map[string]map[string]float64

// APIError represents a non-2xx response from the API. Message is the
// server-provided message, passed through unmodified.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Details    *ErrorDetails
	// Limits is populated on rate-limited errors from the X-Resource-Usage
	// header; empty otherwise.
	Limits ResourceUsage
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("rtbhouse: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

// IsAuthentication reports whether the error was caused by invalid credentials.
func (e *APIError) IsAuthentication() bool {
	return e.Kind == KindAuthentication
}

// IsNotFound reports whether the requested resource does not exist.
func (e *APIError) IsNotFound() bool {
	return e.Kind == KindNotFound
}

// IsRateLimited reports whether the resource usage limits were exceeded.
func (e *APIError) IsRateLimited() bool {
	return e.Kind == KindRateLimited
}

// IsRetryable reports whether a later retry could plausibly succeed.
func (e *APIError) IsRetryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindServerError
}

// TransportError wraps a network-level failure.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("rtbhouse: transport error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// parseResourceUsage parses a header like
// WORKER_TIME-3600=11.7/10000000;BQ_TB_BILLED-21600=4.62/2000
// into a ResourceUsage map. A malformed header yields an empty map.
func parseResourceUsage(header string) ResourceUsage {
	result := ResourceUsage{}
	if header == "" {
		return result
	}
	for _, entry := range strings.Split(header, ";") {
		name, usage, ok := strings.Cut(entry, "=")
		if !ok {
			return ResourceUsage{}
		}
		metric, span, ok := strings.Cut(name, "-")
		if !ok {
			return ResourceUsage{}
		}
		usedStr, limit, ok := strings.Cut(usage, "/")
		if !ok {
			return ResourceUsage{}
		}
		used, err := strconv.ParseFloat(usedStr, 64)
		if err != nil {
			return ResourceUsage{}
		}
		if result[metric] == nil {
			result[metric] = map[string]map[string]float64{}
		}
		if result[metric][span] == nil {
			result[metric][span] = map[string]float64{}
		}
		result[metric][span][limit] = used
	}
	return result
}
