package flowmap_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rohmanhakim/flowmap/internal/flowmap"
	"github.com/rohmanhakim/flowmap/internal/scheduler"
	"github.com/rohmanhakim/flowmap/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func samplePages() []types.Page {
	nav := []string{"https://site.test", "https://site.test/about", "https://site.test/contact"}
	return []types.Page{
		{URL: "https://site.test", Title: "Home", Depth: 0, Links: append([]string{"https://site.test/docs"}, nav[1:]...)},
		{URL: "https://site.test/about", Title: "About", Depth: 1, Links: append([]string(nil), nav...)},
		{URL: "https://site.test/contact", Title: "Contact", Depth: 1, Links: append([]string(nil), nav...)},
		{URL: "https://site.test/docs", Title: "Docs", Depth: 1, Links: append([]string{"https://site.test/docs/start"}, nav...)},
		{URL: "https://site.test/docs/start", Title: "Start", Depth: 2, Links: append([]string{"https://site.test/docs"}, nav...)},
	}
}

func TestMapper_Map(t *testing.T) {
	crawler := &crawlerMock{}
	req := types.CrawlRequest{SeedURL: "https://site.test/", MaxDepth: 2}
	crawler.On("Execute", mock.Anything, req).Return(scheduler.CrawlingExecution{
		SeedURL: "https://site.test",
		Pages:   samplePages(),
		Stats:   types.CrawlStats{Visited: 5, Pages: 5},
	}, nil)

	result, err := flowmap.NewMapper(crawler).Map(context.Background(), req)

	require.NoError(t, err)
	crawler.AssertExpectations(t)

	_, parseErr := uuid.Parse(result.CrawlID)
	assert.NoError(t, parseErr)
	assert.Equal(t, "https://site.test", result.SeedURL)
	assert.Equal(t, 5, result.TotalPages)
	assert.Equal(t, 5, result.Stats.Visited)
	assert.False(t, result.StartedAt.IsZero())

	// about and contact are linked from 4 of 5 pages, the seed from 4 of 5
	assert.Equal(t,
		[]string{"https://site.test", "https://site.test/about", "https://site.test/contact"},
		result.GlobalNav,
	)
	assert.Equal(t, []string{"https://site.test/docs"}, result.Pages[0].Links)
	assert.Empty(t, result.Pages[1].Links)
	assert.Equal(t, []string{"https://site.test/docs/start"}, result.Pages[3].Links)
	assert.Equal(t, []string{"https://site.test/docs"}, result.Pages[4].Links)
}

func TestMapper_Map_PropagatesCrawlError(t *testing.T) {
	crawler := &crawlerMock{}
	seedErr := &scheduler.InvalidSeedError{SeedURL: "nope"}
	crawler.On("Execute", mock.Anything, mock.Anything).Return(scheduler.CrawlingExecution{}, seedErr)

	_, err := flowmap.NewMapper(crawler).Map(context.Background(), types.CrawlRequest{SeedURL: "nope"})

	assert.ErrorIs(t, err, seedErr)
	assert.True(t, scheduler.IsInvalidRequest(err))
}

func TestMapper_Map_EmptyCrawl(t *testing.T) {
	crawler := &crawlerMock{}
	crawler.On("Execute", mock.Anything, mock.Anything).Return(scheduler.CrawlingExecution{
		SeedURL: "https://site.test",
		Pages:   []types.Page{},
	}, nil)

	result, err := flowmap.NewMapper(crawler).Map(context.Background(), types.CrawlRequest{SeedURL: "https://site.test"})

	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalPages)
	assert.NotNil(t, result.GlobalNav)
	assert.Empty(t, result.GlobalNav)
	assert.NotNil(t, result.Pages)
}

func TestMapper_Map_UniqueCrawlIDs(t *testing.T) {
	crawler := &crawlerMock{}
	crawler.On("Execute", mock.Anything, mock.Anything).Return(scheduler.CrawlingExecution{Pages: []types.Page{}}, nil)
	mapper := flowmap.NewMapper(crawler)

	first, err := mapper.Map(context.Background(), types.CrawlRequest{SeedURL: "https://site.test"})
	require.NoError(t, err)
	second, err := mapper.Map(context.Background(), types.CrawlRequest{SeedURL: "https://site.test"})
	require.NoError(t, err)

	assert.NotEqual(t, first.CrawlID, second.CrawlID)
}
