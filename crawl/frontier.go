package crawl

import (
	"strings"
	"sync"
)

// Frontier holds the URLs of one crawl: a FIFO queue of candidates, the set
// of URLs ever dequeued (attempted) and the ordered list of URLs that were
// processed successfully (visited). URL fragments are ignored.
//
// Frontier is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu        sync.Mutex
	queue     []string
	queued    map[string]bool
	attempted map[string]bool
	order     []string
	visited   []string
}

// NewFrontier creates a Frontier seeded with the given URLs.
func NewFrontier(seeds ...string) *Frontier {
	f := &Frontier{
		queued:    make(map[string]bool),
		attempted: make(map[string]bool),
	}
	for _, u := range seeds {
		f.Push(u)
	}
	return f
}

// Push appends a URL to the queue. Returns false if the URL has already been
// attempted or is already queued.
func (f *Frontier) Push(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := stripFragment(rawURL)
	if key == "" || f.attempted[key] || f.queued[key] {
		return false
	}
	f.queued[key] = true
	f.queue = append(f.queue, key)
	return true
}

// Next dequeues the next unattempted URL and marks it attempted.
// The bool result is false if the queue is exhausted.
func (f *Frontier) Next() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next()
}

// NextBatch dequeues up to n unattempted URLs in queue order, marking each
// attempted.
func (f *Frontier) NextBatch(n int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var batch []string
	for len(batch) < n {
		u, ok := f.next()
		if !ok {
			break
		}
		batch = append(batch, u)
	}
	return batch
}

func (f *Frontier) next() (string, bool) {
	for len(f.queue) > 0 {
		u := f.queue[0]
		f.queue = f.queue[1:]
		delete(f.queued, u)
		if f.attempted[u] {
			continue
		}
		f.attempted[u] = true
		f.order = append(f.order, u)
		return u, true
	}
	return "", false
}

// MarkVisited records a successfully processed URL. Only attempted URLs can
// be visited, and each at most once.
func (f *Frontier) MarkVisited(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := stripFragment(rawURL)
	if !f.attempted[key] {
		return false
	}
	for _, v := range f.visited {
		if v == key {
			return false
		}
	}
	f.visited = append(f.visited, key)
	return true
}

// Attempted reports whether the URL has been dequeued.
func (f *Frontier) Attempted(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempted[stripFragment(rawURL)]
}

// AttemptedURLs returns attempted URLs in dequeue order.
func (f *Frontier) AttemptedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.order...)
}

// Visited returns visited URLs in visitation order.
func (f *Frontier) Visited() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.visited...)
}

// VisitedCount returns the number of visited URLs.
func (f *Frontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}

// Len returns the number of URLs waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

func stripFragment(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}
