package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rohmanhakim/flowmap/internal/metadata"
	"github.com/rohmanhakim/flowmap/pkg/failure"
	"github.com/rohmanhakim/flowmap/pkg/retry"
)

/*
Responsibilities

- Perform HTTP GET requests
- Apply headers (User-Agent, optional Authorization) and timeouts
- Classify responses

Fetch Semantics

- Only 2xx responses are returned; 401 is reported as authentication required
- The content type is not checked; parsing decides what is usable
- Bodies are truncated at maxBodyBytes
- Every fetch is recorded with metadata

The fetcher never parses content; it only returns bytes and metadata.
*/

const DefaultTimeout = 10 * time.Second

type HtmlFetcher struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
	maxBodyBytes int64
}

func NewHtmlFetcher(
	metadataSink metadata.MetadataSink,
	timeout time.Duration,
	maxBodyBytes int64,
) *HtmlFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewHtmlFetcherWithClient(metadataSink, &http.Client{Timeout: timeout}, maxBodyBytes)
}

// NewHtmlFetcherWithClient uses the given client as-is.
func NewHtmlFetcherWithClient(
	metadataSink metadata.MetadataSink,
	httpClient *http.Client,
	maxBodyBytes int64,
) *HtmlFetcher {
	if metadataSink == nil {
		metadataSink = metadata.NoopSink{}
	}
	return &HtmlFetcher{
		metadataSink: metadataSink,
		httpClient:   httpClient,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *HtmlFetcher) Fetch(
	ctx context.Context,
	crawlDepth int,
	fetchParam FetchParam,
	retryParam retry.RetryParam,
) (FetchResult, failure.ClassifiedError) {
	startTime := time.Now()

	fetchTask := func() (FetchResult, failure.ClassifiedError) {
		return h.performFetch(ctx, fetchParam)
	}
	outcome, err := retry.Retry(ctx, retryParam, fetchTask)

	retryCount := 0
	if outcome.Attempts() > 1 {
		retryCount = outcome.Attempts() - 1
	}

	var statusCode int
	var contentType string
	if err != nil {
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			statusCode = fetchErr.StatusCode
		}
	} else {
		result := outcome.Value()
		statusCode = result.Code()
		contentType = result.ContentType()
	}

	h.metadataSink.RecordFetch(
		fetchParam.fetchUrl.String(),
		statusCode,
		time.Since(startTime),
		contentType,
		retryCount,
		crawlDepth,
	)

	if err != nil {
		// surface the page-level cause rather than the retry wrapper
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			return FetchResult{}, fetchErr
		}
		return FetchResult{}, err
	}

	result := outcome.Value()
	result.attempts = outcome.Attempts()
	return result, nil
}

func (h *HtmlFetcher) performFetch(ctx context.Context, fetchParam FetchParam) (FetchResult, failure.ClassifiedError) {
	fetchUrl := fetchParam.fetchUrl
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchUrl.String(), nil)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseInvalidRequest,
		}
	}
	applyHeaders(req, fetchParam.userAgent, fetchParam.authorization)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return FetchResult{}, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if statusErr := classifyStatus(resp.StatusCode); statusErr != nil {
		// drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return FetchResult{}, statusErr
	}

	reader := io.Reader(resp.Body)
	if h.maxBodyBytes > 0 {
		reader = io.LimitReader(resp.Body, h.maxBodyBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:    fmt.Sprintf("failed to read response body: %v", err),
			Retryable:  ctx.Err() == nil,
			Cause:      ErrCauseReadResponseBodyError,
			StatusCode: resp.StatusCode,
		}
	}

	return FetchResult{
		url:  fetchUrl,
		body: body,
		meta: ResponseMeta{
			statusCode:          resp.StatusCode,
			contentType:         resp.Header.Get("Content-Type"),
			transferredSizeByte: uint64(len(body)),
		},
	}, nil
}

func classifyTransportError(ctx context.Context, err error) *FetchError {
	if ctx.Err() != nil {
		return &FetchError{
			Message:   fmt.Sprintf("request canceled: %v", ctx.Err()),
			Retryable: false,
			Cause:     ErrCauseCanceled,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{
			Message:   fmt.Sprintf("request timed out: %v", err),
			Retryable: true,
			Cause:     ErrCauseTimeout,
		}
	}

	// Network/transport errors are retryable
	return &FetchError{
		Message:   fmt.Sprintf("request failed: %v", err),
		Retryable: true,
		Cause:     ErrCauseNetworkFailure,
	}
}

func classifyStatus(statusCode int) *FetchError {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil

	case statusCode == http.StatusUnauthorized:
		return &FetchError{
			Message:    "server answered 401",
			Retryable:  false,
			Cause:      ErrCauseAuthRequired,
			StatusCode: statusCode,
		}

	case statusCode == http.StatusTooManyRequests:
		return &FetchError{
			Message:    "rate limited (429)",
			Retryable:  true,
			Cause:      ErrCauseRequestTooMany,
			StatusCode: statusCode,
		}

	case statusCode >= 500:
		return &FetchError{
			Message:    fmt.Sprintf("server error: %d", statusCode),
			Retryable:  true,
			Cause:      ErrCauseRequest5xx,
			StatusCode: statusCode,
		}

	case statusCode == http.StatusForbidden:
		return &FetchError{
			Message:    "access forbidden (403)",
			Retryable:  false,
			Cause:      ErrCauseRequestPageForbidden,
			StatusCode: statusCode,
		}

	case statusCode >= 400:
		return &FetchError{
			Message:    fmt.Sprintf("client error: %d", statusCode),
			Retryable:  false,
			Cause:      ErrCauseRequestClientError,
			StatusCode: statusCode,
		}

	case statusCode >= 300:
		// http.Client follows redirects, so a 3xx here means the chain was cut short
		return &FetchError{
			Message:    fmt.Sprintf("redirect error: %d", statusCode),
			Retryable:  false,
			Cause:      ErrCauseRedirectLimitExceeded,
			StatusCode: statusCode,
		}

	default:
		return &FetchError{
			Message:    fmt.Sprintf("unexpected status: %d", statusCode),
			Retryable:  false,
			Cause:      ErrCauseRequestClientError,
			StatusCode: statusCode,
		}
	}
}
