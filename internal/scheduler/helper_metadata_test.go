package scheduler_test

import (
	"sync"
	"time"

	"github.com/rohmanhakim/flowmap/internal/metadata"
)

type recordedError struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
	details     string
	attrs       map[metadata.AttributeKey]string
}

// recordingSink is a concurrency-safe spy for MetadataSink and CrawlFinalizer
type recordingSink struct {
	mu        sync.Mutex
	errors    []recordedError
	fetches   []string
	starts    []metadata.CrawlStart
	summaries []metadata.CrawlSummary
}

func (r *recordingSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	r.mu.Lock()
	defer r.mu.Unlock()
	attrMap := make(map[metadata.AttributeKey]string, len(attrs))
	for _, a := range attrs {
		attrMap[a.Key] = a.Value
	}
	r.errors = append(r.errors, recordedError{
		packageName: packageName,
		action:      action,
		cause:       cause,
		details:     details,
		attrs:       attrMap,
	})
}

func (r *recordingSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
	crawlDepth int,
) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches = append(r.fetches, fetchUrl)
}

func (r *recordingSink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
}

func (r *recordingSink) RecordCrawlStart(start metadata.CrawlStart) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts = append(r.starts, start)
}

func (r *recordingSink) RecordFinalCrawlStats(summary metadata.CrawlSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, summary)
}

func (r *recordingSink) errorsOfKind(kind string) []recordedError {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []recordedError
	for _, e := range r.errors {
		if e.attrs[metadata.AttrFailureKind] == kind {
			out = append(out, e)
		}
	}
	return out
}
