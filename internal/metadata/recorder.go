package metadata

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

/*
Recorder writes crawl events as structured logrus entries.

Metadata is write-only: no component reads it back to influence
crawl decisions. Events from one worker are logged in the order received;
no ordering across workers is implied.
*/
type Recorder struct {
	workerId string
	log      *logrus.Entry
}

func NewRecorder(workerId string, logger *logrus.Logger) *Recorder {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Recorder{
		workerId: workerId,
		log:      logger.WithField("worker", workerId),
	}
}

// WithCrawlID returns a recorder whose entries carry the crawl id.
func (r *Recorder) WithCrawlID(crawlID string) *Recorder {
	return &Recorder{
		workerId: r.workerId,
		log:      r.log.WithField(string(AttrCrawlID), crawlID),
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	fields := attrFields(attrs)
	fields["package"] = packageName
	fields["action"] = action
	fields["cause"] = cause.String()
	r.log.WithTime(observedAt).WithFields(fields).Warn(details)
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
	crawlDepth int,
) {
	r.log.WithFields(logrus.Fields{
		string(AttrURL):        fetchUrl,
		string(AttrHTTPStatus): httpStatus,
		string(AttrDepth):      crawlDepth,
		"duration":             duration,
		"content_type":         contentType,
		"retries":              retryCount,
	}).Debug("page fetched")
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	fields := attrFields(attrs)
	fields["kind"] = string(kind)
	fields[string(AttrWritePath)] = path
	r.log.WithFields(fields).Info("artifact written")
}

func (r *Recorder) RecordCrawlStart(start CrawlStart) {
	entry := r.log.WithFields(logrus.Fields{
		string(AttrSeedURL):  start.SeedURL,
		string(AttrMaxDepth): start.MaxDepth,
		"concurrency":        start.Concurrency,
	})
	if start.AuthEnabled {
		entry.Info("basic auth enabled, injecting authorization header")
	}
	entry.Info("crawl started")
}

func (r *Recorder) RecordFinalCrawlStats(summary CrawlSummary) {
	r.log.WithFields(logrus.Fields{
		"visited":       summary.Visited,
		"pages":         summary.Pages,
		"failures":      summary.Failures,
		"auth_failures": summary.AuthFailures,
		"dropped":       summary.Dropped,
		"duration_ms":   summary.Duration.Milliseconds(),
		"truncated":     summary.Truncated,
	}).Info("crawl finished")
}

func attrFields(attrs []Attribute) logrus.Fields {
	fields := make(logrus.Fields, len(attrs)+3)
	for _, attr := range attrs {
		if _, sensitive := sensitiveKeys[attr.Key]; sensitive {
			fields[string(attr.Key)] = maskedValue
			continue
		}
		fields[string(attr.Key)] = attr.Value
	}
	return fields
}
