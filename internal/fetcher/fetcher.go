package fetcher

import (
	"context"

	"github.com/rohmanhakim/flowmap/pkg/failure"
	"github.com/rohmanhakim/flowmap/pkg/retry"
)

type Fetcher interface {
	Fetch(
		ctx context.Context,
		crawlDepth int,
		fetchParam FetchParam,
		retryParam retry.RetryParam,
	) (FetchResult, failure.ClassifiedError)
}
