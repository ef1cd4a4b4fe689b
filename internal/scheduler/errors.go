package scheduler

import (
	"fmt"

	"github.com/rohmanhakim/flowmap/pkg/failure"
)

// InvalidSeedError is the only error Crawl returns: the seed URL could not
// be used, and no queue work was done.
type InvalidSeedError struct {
	SeedURL string
	Err     error
}

func (e *InvalidSeedError) Error() string {
	return fmt.Sprintf("invalid seed url %q: %v", e.SeedURL, e.Err)
}

func (e *InvalidSeedError) Unwrap() error {
	return e.Err
}

func (e *InvalidSeedError) Severity() failure.Severity {
	return failure.SeverityFatal
}

// InvalidDepthError rejects a negative maxDepth before any queue work.
type InvalidDepthError struct {
	MaxDepth int
}

func (e *InvalidDepthError) Error() string {
	return fmt.Sprintf("invalid max depth %d: must not be negative", e.MaxDepth)
}

func (e *InvalidDepthError) Severity() failure.Severity {
	return failure.SeverityFatal
}
