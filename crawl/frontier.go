package crawl

import (
	"sync"

	llmtext "github.com/ivo-toby/llm-text-scraper"
	"github.com/ivo-toby/llm-text-scraper/bloom"
)

// Frontier is an in-memory FIFO crawl queue with Bloom filter deduplication.
// URLs are reduced to their normalized identity before deduplication, so
// fragment or query variants of a queued URL count as duplicates.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []string
}

// NewFrontier creates a Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{seen: bloom.NewFilter(n, fpRate)}
}

// Push adds a URL to the back of the queue.
// Returns false if the URL cannot be normalized or has already been seen.
func (f *Frontier) Push(rawURL string) bool {
	url, err := llmtext.NormalizeURL(rawURL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.TestAndAdd(url) {
		return false
	}

	f.queue = append(f.queue, url)
	return true
}

// Pop returns the next URL in discovery order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been queued at any point.
func (f *Frontier) Seen(rawURL string) bool {
	url, err := llmtext.NormalizeURL(rawURL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(url)
}

// SeenCount returns the approximate number of distinct URLs queued.
func (f *Frontier) SeenCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.EstimatedCount()
}
