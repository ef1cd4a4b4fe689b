package scheduler_test

import (
	"context"
	"net/url"

	"github.com/rohmanhakim/flowmap/internal/fetcher"
	"github.com/rohmanhakim/flowmap/pkg/failure"
	"github.com/rohmanhakim/flowmap/pkg/retry"
	"github.com/stretchr/testify/mock"
)

// fetcherMock is a testify mock for the Fetcher
type fetcherMock struct {
	mock.Mock
}

func (f *fetcherMock) Fetch(
	ctx context.Context,
	crawlDepth int,
	fetchParam fetcher.FetchParam,
	retryParam retry.RetryParam,
) (fetcher.FetchResult, failure.ClassifiedError) {
	args := f.Called(ctx, crawlDepth, fetchParam, retryParam)
	result := args.Get(0).(fetcher.FetchResult)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return result, err
}

// forURL matches a FetchParam by its URL string
func forURL(raw string) interface{} {
	return mock.MatchedBy(func(p fetcher.FetchParam) bool {
		u := p.URL()
		return u.String() == raw
	})
}

// onPage makes the mock serve body for raw
func (f *fetcherMock) onPage(raw string, body string) *mock.Call {
	u, _ := url.Parse(raw)
	return f.On("Fetch", mock.Anything, mock.Anything, forURL(raw), mock.Anything).
		Return(fetcher.NewFetchResultForTest(*u, []byte(body), 200, "text/html"), nil)
}

// onError makes the mock fail raw with err
func (f *fetcherMock) onError(raw string, err failure.ClassifiedError) *mock.Call {
	return f.On("Fetch", mock.Anything, mock.Anything, forURL(raw), mock.Anything).
		Return(fetcher.FetchResult{}, err)
}
