package extractor

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/flowmap/internal/metadata"
	"github.com/rohmanhakim/flowmap/pkg/failure"
)

type ExtractionErrorCause string

const (
	ErrCauseNotHTML     ExtractionErrorCause = "not HTML"
	ErrCauseParseFailed ExtractionErrorCause = "parse failed"
)

// ExtractionError is a parse failure of one page. It only skips that page.
type ExtractionError struct {
	Message   string
	Retryable bool
	Cause     ExtractionErrorCause
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error: %s: %s", e.Cause, e.Message)
}

func (e *ExtractionError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

// MetadataCause maps extractor-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func MetadataCause(err error) metadata.ErrorCause {
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		return metadata.CauseUnknown
	}
	return mapExtractionErrorToMetadataCause(extractionErr)
}

func mapExtractionErrorToMetadataCause(err *ExtractionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotHTML, ErrCauseParseFailed:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
