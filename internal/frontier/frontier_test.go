package frontier_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rohmanhakim/flowmap/internal/frontier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layerURLs(layer []frontier.QueueItem) []string {
	urls := make([]string, 0, len(layer))
	for _, item := range layer {
		urls = append(urls, item.URL)
	}
	return urls
}

func TestFrontier_ClaimLayerClaimsBeforeFetch(t *testing.T) {
	f := frontier.NewFrontier(2, 0, 0)
	f.Submit(frontier.NewSeedItem("https://example.com"))
	f.Submit(frontier.NewCrawlItem("https://example.com", 1))

	layer := f.ClaimLayer()

	require.Len(t, layer, 1)
	assert.Equal(t, "https://example.com", layer[0].URL)
	assert.Equal(t, frontier.SourceSeed, layer[0].Source)

	// claimed URLs are discarded on resubmission
	f.Submit(frontier.NewCrawlItem("https://example.com", 1))
	assert.Empty(t, f.ClaimLayer())
	assert.Equal(t, 1, f.Stats().Claimed)
}

func TestFrontier_DiscardsItemsBeyondMaxDepth(t *testing.T) {
	f := frontier.NewFrontier(1, 0, 0)
	f.Submit(frontier.NewCrawlItem("https://example.com/deep", 2))

	assert.Empty(t, f.ClaimLayer())

	stats := f.Stats()
	assert.Equal(t, 0, stats.Claimed)
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 0, stats.QueueLength)
}

func TestFrontier_ClaimLayer(t *testing.T) {
	f := frontier.NewFrontier(3, 0, 0)
	f.Submit(frontier.NewCrawlItem("https://example.com/a", 1))
	f.Submit(frontier.NewCrawlItem("https://example.com/b", 1))
	f.Submit(frontier.NewCrawlItem("https://example.com/a", 1))
	f.Submit(frontier.NewCrawlItem("https://example.com/c", 1))

	layer := f.ClaimLayer()

	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}, layerURLs(layer))
	stats := f.Stats()
	assert.Equal(t, 0, stats.QueueLength)
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 3, stats.Claimed)

	f.Submit(frontier.NewCrawlItem("https://example.com/b", 2))
	assert.Empty(t, f.ClaimLayer())
}

func TestFrontier_MaxPages(t *testing.T) {
	f := frontier.NewFrontier(5, 2, 0)
	for i := 0; i < 4; i++ {
		f.Submit(frontier.NewCrawlItem(fmt.Sprintf("https://example.com/%d", i), 1))
	}

	layer := f.ClaimLayer()

	assert.Equal(t, []string{"https://example.com/0", "https://example.com/1"}, layerURLs(layer))
	stats := f.Stats()
	assert.Equal(t, 2, stats.Claimed)
	assert.True(t, stats.LimitHit)
}

func TestFrontier_MaxFrontierDropsOverflow(t *testing.T) {
	f := frontier.NewFrontier(5, 0, 2)

	assert.True(t, f.Submit(frontier.NewCrawlItem("https://example.com/1", 1)))
	assert.True(t, f.Submit(frontier.NewCrawlItem("https://example.com/2", 1)))
	assert.False(t, f.Submit(frontier.NewCrawlItem("https://example.com/3", 1)))

	stats := f.Stats()
	assert.Equal(t, 1, stats.Dropped)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 2, stats.QueueLength)
}

func TestFrontier_MaxFrontierIgnoresDuplicates(t *testing.T) {
	f := frontier.NewFrontier(5, 0, 2)
	f.Submit(frontier.NewSeedItem("https://example.com"))
	require.Len(t, f.ClaimLayer(), 1)

	// visited and already queued URLs never fill the pending set
	for i := 0; i < 10; i++ {
		assert.True(t, f.Submit(frontier.NewCrawlItem("https://example.com", 1)))
		assert.True(t, f.Submit(frontier.NewCrawlItem("https://example.com/nav", 1)))
	}
	assert.True(t, f.Submit(frontier.NewCrawlItem("https://example.com/child", 1)))
	assert.False(t, f.Submit(frontier.NewCrawlItem("https://example.com/overflow", 1)))

	stats := f.Stats()
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 21, stats.QueueLength)
	assert.Equal(t, 1, stats.Dropped)

	layer := f.ClaimLayer()
	assert.Equal(t, []string{"https://example.com/nav", "https://example.com/child"}, layerURLs(layer))

	// the slots free up once the layer is claimed
	assert.True(t, f.Submit(frontier.NewCrawlItem("https://example.com/overflow", 2)))
	assert.Equal(t, 1, f.Stats().Pending)
}

func TestFrontier_ConcurrentClaimLayerClaimsOnce(t *testing.T) {
	f := frontier.NewFrontier(1, 0, 0)

	var mu sync.Mutex
	claims := 0
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				f.Submit(frontier.NewCrawlItem("https://example.com/same", 1))
				layer := f.ClaimLayer()
				mu.Lock()
				claims += len(layer)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	claims += len(f.ClaimLayer())
	assert.Equal(t, 1, claims)
	assert.Equal(t, 0, f.Stats().Pending)
}

func TestVisitedSet(t *testing.T) {
	v := frontier.NewVisitedSet(0)

	assert.False(t, v.Contains("https://example.com"))
	assert.True(t, v.Claim("https://example.com"))
	assert.False(t, v.Claim("https://example.com"))
	assert.True(t, v.Contains("https://example.com"))
	assert.False(t, v.Contains("https://example.com/other"))
	assert.Equal(t, 1, v.Size())
}
