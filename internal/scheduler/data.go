package scheduler

import (
	"github.com/rohmanhakim/flowmap/internal/frontier"
	"github.com/rohmanhakim/flowmap/pkg/failure"
	"github.com/rohmanhakim/flowmap/pkg/types"
)

// CrawlingExecution is everything one crawl produced.
type CrawlingExecution struct {
	SeedURL string
	Pages   []types.Page
	Stats   types.CrawlStats
}

// FailureKind classifies why a claimed URL produced no Page.
type FailureKind string

const (
	FailureNone         FailureKind = ""
	FailureAuthRequired FailureKind = "auth_required"
	FailureFetch        FailureKind = "fetch"
	FailureParse        FailureKind = "parse"
	// FailureSkipped marks claimed items never fetched because the crawl deadline passed.
	FailureSkipped FailureKind = "skipped"
)

// pageOutcome is the explicit result of processing one claimed item.
// Exactly one of page or (kind, err) is meaningful.
type pageOutcome struct {
	item frontier.QueueItem
	page types.Page
	kind FailureKind
	err  failure.ClassifiedError
}

func succeeded(item frontier.QueueItem, page types.Page) pageOutcome {
	return pageOutcome{item: item, page: page, kind: FailureNone}
}

func failed(item frontier.QueueItem, kind FailureKind, err failure.ClassifiedError) pageOutcome {
	return pageOutcome{item: item, kind: kind, err: err}
}

func (o pageOutcome) ok() bool {
	return o.kind == FailureNone
}
