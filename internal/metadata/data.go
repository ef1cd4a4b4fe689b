package metadata

import (
	"time"
)

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging and reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause MUST NOT be used for retry, continuation, or abort decisions.
	 - Pipeline packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown
  - The failure does not map cleanly to any known category.

# CauseNetworkFailure
  - Transport failures: timeouts, DNS, connection resets, 5xx responses.

# CauseAuthRequired
  - The server answered 401; supplied credentials (if any) were rejected.

# CausePolicyDisallow
  - The server refused the request for a reason other than authentication (4xx).

# CauseContentInvalid
  - Content was fetched but could not be parsed.

# CauseStorageFailure
  - Failure while persisting crawl reports.

# CauseInvariantViolation
  - A system-level invariant was violated (e.g. malformed seed URL).
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseAuthRequired
	CausePolicyDisallow
	CauseContentInvalid
	CauseStorageFailure
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseAuthRequired:
		return "auth_required"
	case CausePolicyDisallow:
		return "policy_disallow"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

type ArtifactKind string

const (
	ArtifactReport ArtifactKind = "report"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL           AttributeKey = "url"
	AttrSeedURL       AttributeKey = "seed_url"
	AttrDepth         AttributeKey = "depth"
	AttrMaxDepth      AttributeKey = "max_depth"
	AttrFailureKind   AttributeKey = "failure_kind"
	AttrHTTPStatus    AttributeKey = "http_status"
	AttrWritePath     AttributeKey = "write_path"
	AttrFormat        AttributeKey = "format"
	AttrCrawlID       AttributeKey = "crawl_id"
	AttrAuthorization AttributeKey = "authorization"
	AttrPassword      AttributeKey = "password"
	AttrUsername      AttributeKey = "username"
)

// sensitiveKeys are never written in clear text.
var sensitiveKeys = map[AttributeKey]struct{}{
	AttrAuthorization: {},
	AttrPassword:      {},
}

const maskedValue = "[REDACTED]"

// CrawlStart describes a crawl at the moment it begins.
type CrawlStart struct {
	SeedURL     string
	MaxDepth    int
	Concurrency int
	AuthEnabled bool
	StartedAt   time.Time
}

// CrawlSummary is the terminal, derived summary of a finished crawl.
type CrawlSummary struct {
	Visited      int
	Pages        int
	Failures     int
	AuthFailures int
	Dropped      int
	Duration     time.Duration
	Truncated    bool
}
