package fetcher

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/flowmap/internal/metadata"
	"github.com/rohmanhakim/flowmap/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseTimeout               FetchErrorCause = "timeout"
	ErrCauseCanceled              FetchErrorCause = "canceled"
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseInvalidRequest        FetchErrorCause = "invalid request"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
	ErrCauseRedirectLimitExceeded FetchErrorCause = "reached redirect limit"
	ErrCauseAuthRequired          FetchErrorCause = "authentication required"
	ErrCauseRequestPageForbidden  FetchErrorCause = "forbidden"
	ErrCauseRequestClientError    FetchErrorCause = "4xx"
	ErrCauseRequestTooMany        FetchErrorCause = "too many requests"
	ErrCauseRequest5xx            FetchErrorCause = "5xx"
)

// FetchError describes a page that could not be retrieved. A failed page
// never ends the crawl, so every FetchError is recoverable.
type FetchError struct {
	Message    string
	Retryable  bool
	Cause      FetchErrorCause
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

// IsRetryable returns whether this error is retryable
func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// IsAuthRequired reports a 401 answer.
func (e *FetchError) IsAuthRequired() bool {
	return e.Cause == ErrCauseAuthRequired
}

// IsAuthRequired reports whether err carries a 401 FetchError.
func IsAuthRequired(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.IsAuthRequired()
}

// MetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func MetadataCause(err error) metadata.ErrorCause {
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		return metadata.CauseUnknown
	}
	return mapFetchErrorToMetadataCause(fetchErr)
}

func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseTimeout, ErrCauseNetworkFailure, ErrCauseReadResponseBodyError, ErrCauseRequest5xx:
		return metadata.CauseNetworkFailure
	case ErrCauseAuthRequired:
		return metadata.CauseAuthRequired
	case ErrCauseRequestPageForbidden, ErrCauseRequestClientError, ErrCauseRequestTooMany, ErrCauseRedirectLimitExceeded:
		return metadata.CausePolicyDisallow
	case ErrCauseInvalidRequest:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
