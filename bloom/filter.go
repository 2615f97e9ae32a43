// Package bloom provides probabilistic URL set membership for crawl
// deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks which URLs have been seen. Membership tests can return
// false positives at the configured rate, never false negatives, so a
// crawler using it may skip a page but will not visit one twice.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL might have been seen.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd marks a URL as seen and reports whether it was already
// present, in one operation.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of URLs seen.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
