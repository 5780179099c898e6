package weather

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrConfiguration is returned when a required setting (API key) is missing.
	ErrConfiguration = errors.New("configuration error")
	// ErrTimeout is returned when an upstream call exceeds its deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrNetwork is returned for transport-level failures.
	ErrNetwork = errors.New("network error")
	// ErrUpstream is returned when the weather API reports an application error.
	ErrUpstream = errors.New("upstream error")
	// ErrStorageParse is returned when a stored value is not valid JSON.
	ErrStorageParse = errors.New("stored value is malformed")
	// ErrInvalidQuery is returned for caller input rejected before any
	// upstream call.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmptyQuery is returned when a location query has neither text nor
	// coordinates.
	ErrEmptyQuery = fmt.Errorf("%w: location query is empty", ErrInvalidQuery)
)

// ConfigurationError reports a missing setting. No network call is made.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Setting)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// TimeoutError reports a call that was cancelled after After elapsed.
type TimeoutError struct {
	URL   string
	After time.Duration
	Cause error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.URL, e.After)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }
func (e *TimeoutError) Unwrap() error         { return e.Cause }

// NetworkError wraps a transport failure (DNS, refused connection, bad body).
type NetworkError struct {
	URL   string
	Cause error
}

func (e *NetworkError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("network error: %v", e.Cause)
	}
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Cause)
}

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }
func (e *NetworkError) Unwrap() error         { return e.Cause }

// UpstreamError carries the application error reported by the weather API.
// Message is the upstream text, unmodified.
type UpstreamError struct {
	Code    int
	Status  int
	Message string
}

func (e *UpstreamError) Error() string { return e.Message }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// StorageParseError reports a stored value that could not be decoded.
// It is always recovered locally by treating the value as empty.
type StorageParseError struct {
	Key   string
	Cause error
}

func (e *StorageParseError) Error() string {
	return fmt.Sprintf("stored value for %q is malformed: %v", e.Key, e.Cause)
}

func (e *StorageParseError) Is(target error) bool { return target == ErrStorageParse }
func (e *StorageParseError) Unwrap() error         { return e.Cause }

func upstreamErrorFrom(p *ErrorPayload) error {
	return &UpstreamError{Code: p.Code, Message: p.Message}
}
