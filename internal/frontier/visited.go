package frontier

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/rohmanhakim/flowmap/pkg/collection"
)

// VisitedSet records canonical URLs claimed for fetching. It only grows.
// The bloom filter answers most "never seen" lookups; the exact set
// resolves its false positives.
type VisitedSet struct {
	filter *bloom.BloomFilter
	exact  collection.Set[string]
}

func NewVisitedSet(expected uint) *VisitedSet {
	if expected == 0 {
		expected = 10000
	}
	return &VisitedSet{
		filter: bloom.NewWithEstimates(expected, 0.0001),
		exact:  collection.NewSet[string](),
	}
}

func (v *VisitedSet) Contains(url string) bool {
	if !v.filter.TestString(url) {
		return false
	}
	return v.exact.Contains(url)
}

// Claim marks url visited and reports whether it was new.
func (v *VisitedSet) Claim(url string) bool {
	if v.Contains(url) {
		return false
	}
	v.filter.AddString(url)
	v.exact.Add(url)
	return true
}

func (v *VisitedSet) Size() int {
	return v.exact.Size()
}
