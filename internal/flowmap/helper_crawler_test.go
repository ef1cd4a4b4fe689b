package flowmap_test

import (
	"context"

	"github.com/rohmanhakim/flowmap/internal/scheduler"
	"github.com/rohmanhakim/flowmap/pkg/types"
	"github.com/stretchr/testify/mock"
)

type crawlerMock struct {
	mock.Mock
}

func (c *crawlerMock) Execute(ctx context.Context, req types.CrawlRequest) (scheduler.CrawlingExecution, error) {
	args := c.Called(ctx, req)
	return args.Get(0).(scheduler.CrawlingExecution), args.Error(1)
}
