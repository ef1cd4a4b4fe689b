package metadata

import "time"

/*
MetadataSink receives structured crawl events.
It must not:
- perform I/O decisions
- affect control flow
Events from different workers carry no global ordering.
*/
type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
		retryCount int,
		crawlDepth int,
	)

	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

/*
CrawlFinalizer brackets a crawl execution.

Contract:
  - RecordCrawlStart is called once, after the seed is validated.
  - RecordFinalCrawlStats is called exactly once, after crawl termination.
  - The summary is derived from scheduler state, never read back from the sink.
*/
type CrawlFinalizer interface {
	RecordCrawlStart(start CrawlStart)
	RecordFinalCrawlStats(summary CrawlSummary)
}

// NoopSink discards every event.
type NoopSink struct{}

func (NoopSink) RecordError(time.Time, string, string, ErrorCause, string, []Attribute) {}

func (NoopSink) RecordFetch(string, int, time.Duration, string, int, int) {}

func (NoopSink) RecordArtifact(ArtifactKind, string, []Attribute) {}

func (NoopSink) RecordCrawlStart(CrawlStart) {}

func (NoopSink) RecordFinalCrawlStats(CrawlSummary) {}
