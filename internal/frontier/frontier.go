package frontier

import (
	"sync"

	"github.com/rohmanhakim/flowmap/pkg/collection"
)

/*
Frontier Responsibilities
- Maintain BFS ordering with a FIFO queue
- Deduplicate lazily: an item is checked against the visited set when it
  is dequeued, not when it is enqueued
- Claim (mark visited) a URL before it is fetched
- Enforce depth and page bounds, and cap the number of distinct
  unvisited URLs waiting in the queue
- Knows nothing about:
	- fetching
	- parsing
	- link normalization

It is a data structure + policy module, not a pipeline executor.
All methods are safe for concurrent use.
*/

type Frontier struct {
	mu          sync.Mutex
	queue       *collection.FIFOQueue[QueueItem]
	visited     *VisitedSet
	pending     map[string]int
	maxDepth    int
	maxPages    int
	maxFrontier int
	claimed     int
	dropped     int
	limitHit    bool
}

// NewFrontier creates an empty frontier. maxPages and maxFrontier of 0
// mean unlimited. maxFrontier bounds the number of distinct unvisited
// URLs waiting in the queue; duplicate entries do not count against it.
func NewFrontier(maxDepth int, maxPages int, maxFrontier int) *Frontier {
	expected := uint(maxPages)
	if maxFrontier > maxPages {
		expected = uint(maxFrontier)
	}
	return &Frontier{
		queue:       collection.NewFIFOQueue[QueueItem](),
		visited:     NewVisitedSet(expected),
		pending:     make(map[string]int),
		maxDepth:    maxDepth,
		maxPages:    maxPages,
		maxFrontier: maxFrontier,
	}
}

// Submit enqueues item. Duplicates are admitted and discarded at claim
// time. It returns false when item is a new URL and the pending set is
// full, in which case the item is dropped.
func (f *Frontier) Submit(item QueueItem) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.visited.Contains(item.URL) {
		f.queue.Enqueue(item)
		return true
	}
	if _, queued := f.pending[item.URL]; !queued && f.maxFrontier > 0 && len(f.pending) >= f.maxFrontier {
		f.dropped++
		return false
	}
	f.pending[item.URL]++
	f.queue.Enqueue(item)
	return true
}

// ClaimLayer drains every item currently queued and returns the claimed
// ones in queue order. Callers that enqueue only after a layer finishes
// get exactly one BFS depth per call.
func (f *Frontier) ClaimLayer() []QueueItem {
	f.mu.Lock()
	defer f.mu.Unlock()

	claimed := make([]QueueItem, 0, f.queue.Size())
	for {
		item, ok := f.queue.Dequeue()
		if !ok {
			return claimed
		}
		f.release(item.URL)
		if f.claimLocked(item) {
			claimed = append(claimed, item)
		}
	}
}

func (f *Frontier) release(url string) {
	n, ok := f.pending[url]
	if !ok {
		return
	}
	if n <= 1 {
		delete(f.pending, url)
		return
	}
	f.pending[url] = n - 1
}

func (f *Frontier) claimLocked(item QueueItem) bool {
	if item.Depth > f.maxDepth {
		return false
	}
	if f.visited.Contains(item.URL) {
		return false
	}
	if f.maxPages > 0 && f.claimed >= f.maxPages {
		f.limitHit = true
		return false
	}
	f.visited.Claim(item.URL)
	delete(f.pending, item.URL)
	f.claimed++
	return true
}

func (f *Frontier) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Stats{
		Claimed:     f.claimed,
		Dropped:     f.dropped,
		LimitHit:    f.limitHit,
		Pending:     len(f.pending),
		QueueLength: f.queue.Size(),
	}
}
