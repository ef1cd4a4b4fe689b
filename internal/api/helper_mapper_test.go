package api_test

import (
	"context"

	"github.com/rohmanhakim/flowmap/pkg/types"
	"github.com/stretchr/testify/mock"
)

type mapperMock struct {
	mock.Mock
}

func (m *mapperMock) Map(ctx context.Context, req types.CrawlRequest) (types.MapResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(types.MapResult), args.Error(1)
}
