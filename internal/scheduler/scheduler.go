package scheduler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rohmanhakim/flowmap/internal/config"
	"github.com/rohmanhakim/flowmap/internal/extractor"
	"github.com/rohmanhakim/flowmap/internal/fetcher"
	"github.com/rohmanhakim/flowmap/internal/frontier"
	"github.com/rohmanhakim/flowmap/internal/metadata"
	"github.com/rohmanhakim/flowmap/internal/normalize"
	"github.com/rohmanhakim/flowmap/pkg/failure"
	"github.com/rohmanhakim/flowmap/pkg/retry"
	"github.com/rohmanhakim/flowmap/pkg/timeutil"
	"github.com/rohmanhakim/flowmap/pkg/types"
	"github.com/rohmanhakim/flowmap/pkg/urlutil"
	"golang.org/x/sync/errgroup"
)

/*
 Scheduler is the sole control-plane authority of the crawl.

 Traversal:
 - Breadth-first from the canonical seed URL.
 - An item is discarded at dequeue when its URL is already visited or its
   depth exceeds maxDepth; otherwise it is claimed (marked visited) before
   the fetch starts, so a failing URL is never fetched twice.
 - The frontier is drained one BFS layer at a time. Claimed items of a layer
   are fetched by at most `concurrency` goroutines; their links are enqueued
   in claim order once the whole layer is done. Depths are exact BFS
   distances and the result is the same for any concurrency.

 Failure isolation:
 - Every claimed item yields a pageOutcome. Failed items produce no Page
   and enqueue nothing; they are reported to the metadata sink and the
   crawl continues.
 - Only an unusable seed (or negative depth) is returned as an error.

 Bounds: maxPages caps claims, maxFrontier caps the queue and crawlTimeout
 caps the whole crawl. Hitting any of them returns the partial result
 with Truncated set.

 A Scheduler holds configuration and collaborators only; all crawl state
 is local to one Execute call, so one Scheduler may run crawls concurrently.
*/

type Scheduler struct {
	cfg            config.Config
	metadataSink   metadata.MetadataSink
	crawlFinalizer metadata.CrawlFinalizer
	fetcher        fetcher.Fetcher
	parser         extractor.Parser
}

// NewScheduler wires the HTML fetcher and DOM extractor to recorder.
func NewScheduler(cfg config.Config, recorder *metadata.Recorder) *Scheduler {
	htmlFetcher := fetcher.NewHtmlFetcher(recorder, cfg.Timeout(), cfg.MaxBodyBytes())
	return NewSchedulerWithDeps(cfg, recorder, recorder, htmlFetcher, extractor.NewDomExtractor())
}

// NewSchedulerWithDeps creates a Scheduler with injected dependencies for testing.
func NewSchedulerWithDeps(
	cfg config.Config,
	crawlFinalizer metadata.CrawlFinalizer,
	metadataSink metadata.MetadataSink,
	htmlFetcher fetcher.Fetcher,
	parser extractor.Parser,
) *Scheduler {
	return &Scheduler{
		cfg:            cfg,
		metadataSink:   metadataSink,
		crawlFinalizer: crawlFinalizer,
		fetcher:        htmlFetcher,
		parser:         parser,
	}
}

// Crawl returns the pages reachable from the seed within req.MaxDepth, in
// dequeue order (non-decreasing depth).
func (s *Scheduler) Crawl(ctx context.Context, req types.CrawlRequest) ([]types.Page, error) {
	execution, err := s.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return execution.Pages, nil
}

// crawlState is private to one Execute call.
type crawlState struct {
	seed          url.URL
	normalizer    normalize.LinkNormalizer
	frontier      *frontier.Frontier
	maxDepth      int
	authorization string
	retryParam    retry.RetryParam
	pages         []types.Page
	failures      int
	authFailures  int
}

// Execute runs one crawl and returns the pages together with statistics.
func (s *Scheduler) Execute(ctx context.Context, req types.CrawlRequest) (CrawlingExecution, error) {
	startedAt := time.Now()

	seed, err := urlutil.ParseSeed(req.SeedURL)
	if err != nil {
		s.metadataSink.RecordError(
			startedAt,
			"scheduler",
			"Scheduler.Execute",
			metadata.CauseInvariantViolation,
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrSeedURL, req.SeedURL),
			},
		)
		return CrawlingExecution{}, &InvalidSeedError{SeedURL: req.SeedURL, Err: err}
	}
	if req.MaxDepth < 0 {
		return CrawlingExecution{}, &InvalidDepthError{MaxDepth: req.MaxDepth}
	}

	state := &crawlState{
		seed:          seed,
		normalizer:    normalize.NewLinkNormalizer(seed),
		frontier:      frontier.NewFrontier(req.MaxDepth, s.cfg.MaxPages(), s.cfg.MaxFrontier()),
		maxDepth:      req.MaxDepth,
		authorization: req.Credentials.AuthorizationHeader(),
		retryParam:    s.retryParam(),
		pages:         []types.Page{},
	}
	seedURL := urlutil.CanonicalString(seed)
	state.frontier.Submit(frontier.NewSeedItem(seedURL))

	s.crawlFinalizer.RecordCrawlStart(metadata.CrawlStart{
		SeedURL:     seedURL,
		MaxDepth:    req.MaxDepth,
		Concurrency: s.cfg.Concurrency(),
		AuthEnabled: state.authorization != "",
		StartedAt:   startedAt,
	})

	crawlCtx := ctx
	if s.cfg.CrawlTimeout() > 0 {
		var cancel context.CancelFunc
		crawlCtx, cancel = context.WithTimeout(ctx, s.cfg.CrawlTimeout())
		defer cancel()
	}

	deadlineHit := false
	for {
		if crawlCtx.Err() != nil {
			deadlineHit = true
			break
		}
		layer := state.frontier.ClaimLayer()
		if len(layer) == 0 {
			break
		}
		outcomes := s.processLayer(crawlCtx, state, layer)
		for _, outcome := range outcomes {
			s.applyOutcome(state, outcome)
		}
	}

	frontierStats := state.frontier.Stats()
	stats := types.CrawlStats{
		Visited:      frontierStats.Claimed,
		Pages:        len(state.pages),
		Failures:     state.failures,
		AuthFailures: state.authFailures,
		Dropped:      frontierStats.Dropped,
		Duration:     time.Since(startedAt),
		Truncated:    deadlineHit || frontierStats.LimitHit || frontierStats.Dropped > 0,
	}

	s.crawlFinalizer.RecordFinalCrawlStats(metadata.CrawlSummary{
		Visited:      stats.Visited,
		Pages:        stats.Pages,
		Failures:     stats.Failures,
		AuthFailures: stats.AuthFailures,
		Dropped:      stats.Dropped,
		Duration:     stats.Duration,
		Truncated:    stats.Truncated,
	})

	return CrawlingExecution{
		SeedURL: seedURL,
		Pages:   state.pages,
		Stats:   stats,
	}, nil
}

// processLayer fetches and parses every claimed item of one BFS layer.
// Outcomes are returned in claim order.
func (s *Scheduler) processLayer(ctx context.Context, state *crawlState, layer []frontier.QueueItem) []pageOutcome {
	outcomes := make([]pageOutcome, len(layer))

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency())
	for i, item := range layer {
		if ctx.Err() != nil {
			outcomes[i] = failed(item, FailureSkipped, nil)
			continue
		}
		g.Go(func() error {
			outcomes[i] = s.processPage(ctx, state, item)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (s *Scheduler) processPage(ctx context.Context, state *crawlState, item frontier.QueueItem) pageOutcome {
	pageURL, err := url.Parse(item.URL)
	if err != nil {
		return failed(item, FailureFetch, &fetcher.FetchError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     fetcher.ErrCauseInvalidRequest,
		})
	}

	fetchParam := fetcher.NewFetchParam(*pageURL, s.cfg.UserAgent(), state.authorization)
	result, fetchErr := s.fetcher.Fetch(ctx, item.Depth, fetchParam, state.retryParam)
	if fetchErr != nil {
		if fetcher.IsAuthRequired(fetchErr) {
			return failed(item, FailureAuthRequired, fetchErr)
		}
		if ctx.Err() != nil {
			return failed(item, FailureSkipped, fetchErr)
		}
		return failed(item, FailureFetch, fetchErr)
	}

	parsed, parseErr := s.parser.Parse(*pageURL, result.Body())
	if parseErr != nil {
		return failed(item, FailureParse, parseErr)
	}

	return succeeded(item, types.Page{
		URL:   item.URL,
		Title: parsed.Title,
		Links: state.normalizer.NormalizeAll(parsed.Hrefs, *pageURL),
		Depth: item.Depth,
	})
}

// applyOutcome runs on the dispatcher goroutine only.
func (s *Scheduler) applyOutcome(state *crawlState, outcome pageOutcome) {
	if !outcome.ok() {
		s.reportFailure(state, outcome)
		return
	}

	state.pages = append(state.pages, outcome.page)

	nextDepth := outcome.item.Depth + 1
	if nextDepth > state.maxDepth {
		// would be discarded at dequeue anyway
		return
	}
	for _, link := range outcome.page.Links {
		state.frontier.Submit(frontier.NewCrawlItem(link, nextDepth))
	}
}

func (s *Scheduler) reportFailure(state *crawlState, outcome pageOutcome) {
	if outcome.kind == FailureSkipped {
		return
	}

	state.failures++
	var cause metadata.ErrorCause
	var details string
	switch outcome.kind {
	case FailureAuthRequired:
		state.authFailures++
		cause = metadata.CauseAuthRequired
		details = fmt.Sprintf("access denied at %s, credentials might be required: %v", outcome.item.URL, outcome.err)
	case FailureParse:
		cause = extractor.MetadataCause(outcome.err)
		details = errorString(outcome.err)
	default:
		cause = fetcher.MetadataCause(outcome.err)
		details = errorString(outcome.err)
	}

	s.metadataSink.RecordError(
		time.Now(),
		"scheduler",
		"Scheduler.processPage",
		cause,
		details,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, outcome.item.URL),
			metadata.NewAttr(metadata.AttrDepth, strconv.Itoa(outcome.item.Depth)),
			metadata.NewAttr(metadata.AttrFailureKind, string(outcome.kind)),
		},
	)
}

func (s *Scheduler) retryParam() retry.RetryParam {
	return retry.NewRetryParam(
		s.cfg.Jitter(),
		s.cfg.RandomSeed(),
		s.cfg.MaxAttempt(),
		timeutil.NewBackoffParam(
			s.cfg.BackoffInitialDuration(),
			s.cfg.BackoffMultiplier(),
			s.cfg.BackoffMaxDuration(),
		),
	)
}

func errorString(err failure.ClassifiedError) string {
	if err == nil {
		return "unknown failure"
	}
	return err.Error()
}

// IsInvalidRequest reports whether err was caused by an unusable crawl request.
func IsInvalidRequest(err error) bool {
	var seedErr *InvalidSeedError
	var depthErr *InvalidDepthError
	return errors.As(err, &seedErr) || errors.As(err, &depthErr)
}
