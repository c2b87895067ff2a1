package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ============================================================================
// Request Errors
// ============================================================================

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidLayerCode     = errors.New("invalid layer code")
	ErrInvalidPageLength    = errors.New("page length must be a positive integer")
	ErrFeatureURLNotAllowed = errors.New("feature url does not point at the configured map server")
)

// ============================================================================
// Upstream Errors
// ============================================================================

var (
	ErrResourceNotFound    = errors.New("resource not found")
	ErrServiceDisabled     = errors.New("upstream service is not configured")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrUpstreamMalformed   = errors.New("upstream returned an unexpected document")
)

// ============================================================================
// Cache Errors
// ============================================================================

var ErrCacheMiss = errors.New("cache miss")

// UpstreamError describes a failed call to GeoServer, HydroServer or
// HydroShare. A 404 answer unwraps to ErrResourceNotFound, anything else to
// ErrUpstreamUnavailable.
type UpstreamError struct {
	Service    string
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned status %d", e.Service, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Service, e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() []error {
	sentinel := ErrUpstreamUnavailable
	if e.StatusCode == http.StatusNotFound {
		sentinel = ErrResourceNotFound
	}
	if e.Err != nil {
		return []error{sentinel, e.Err}
	}
	return []error{sentinel}
}
