package frontier

// Crawl state & ordering

type SourceContext string

const (
	SourceSeed  SourceContext = "Seed"
	SourceCrawl SourceContext = "Crawl"
)

// QueueItem is created when a link is discovered and consumed exactly once
// at dequeue, whether or not it is fetched.
type QueueItem struct {
	URL    string
	Depth  int
	Source SourceContext
}

func NewSeedItem(url string) QueueItem {
	return QueueItem{URL: url, Depth: 0, Source: SourceSeed}
}

func NewCrawlItem(url string, depth int) QueueItem {
	return QueueItem{URL: url, Depth: depth, Source: SourceCrawl}
}

// Stats is a snapshot of frontier bookkeeping.
type Stats struct {
	Claimed     int
	Dropped     int
	LimitHit    bool
	Pending     int
	QueueLength int
}
