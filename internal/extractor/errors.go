package extractor

import (
	"context"
	"errors"
	"fmt"
)

// ProviderError indicates an extraction backend failed: a non-2xx HTTP
// status, a malformed response payload, or an exceeded deadline.
type ProviderError struct {
	Provider   string
	StatusCode int
	Timeout    bool
	Err        error
}

func (e *ProviderError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s extraction timed out: %v", e.Provider, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s extraction failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("%s extraction failed: %v", e.Provider, e.Err)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a ProviderError for a failed provider call.
func NewProviderError(provider string, statusCode int, err error) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: statusCode, Err: err}
}

// WrapTransportError classifies a transport-level failure, marking context
// deadline expiry as a timeout.
func WrapTransportError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Timeout:  errors.Is(err, context.DeadlineExceeded),
		Err:      err,
	}
}
