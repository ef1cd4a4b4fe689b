package flowmap

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rohmanhakim/flowmap/internal/noise"
	"github.com/rohmanhakim/flowmap/internal/scheduler"
	"github.com/rohmanhakim/flowmap/pkg/collection"
	"github.com/rohmanhakim/flowmap/pkg/types"
)

/*
Mapper turns one crawl into a flow map:

	crawl -> identify global navigation -> refine links -> MapResult

It owns no crawl state. Errors from the crawler (an invalid seed or
depth) are returned unchanged so transports can classify them.
*/

// Crawler runs a single crawl.
type Crawler interface {
	Execute(ctx context.Context, req types.CrawlRequest) (scheduler.CrawlingExecution, error)
}

type Mapper struct {
	crawler Crawler
	newID   func() string
}

func NewMapper(crawler Crawler) *Mapper {
	return &Mapper{
		crawler: crawler,
		newID:   uuid.NewString,
	}
}

// Map crawls from req.SeedURL and strips global navigation from every page.
func (m *Mapper) Map(ctx context.Context, req types.CrawlRequest) (types.MapResult, error) {
	startedAt := time.Now()

	execution, err := m.crawler.Execute(ctx, req)
	if err != nil {
		return types.MapResult{}, err
	}

	nav := noise.Identify(execution.Pages)
	refined := noise.Refine(execution.Pages, nav)

	return types.MapResult{
		CrawlID:    m.newID(),
		SeedURL:    execution.SeedURL,
		TotalPages: len(refined),
		GlobalNav:  collection.SortedStrings(nav),
		Pages:      refined,
		Stats:      execution.Stats,
		StartedAt:  startedAt,
	}, nil
}
