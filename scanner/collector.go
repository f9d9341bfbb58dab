package scanner

import "sync"

// Collector is an append-only list of scan results shared by all workers.
// Appends are safe under concurrency; the final sequence is read once after
// the pool has fully stopped.
type Collector struct {
	mu      sync.Mutex
	results []ScanResult
}

// NewCollector returns a collector pre-sized for the expected result count.
func NewCollector(capacity int) *Collector {
	return &Collector{results: make([]ScanResult, 0, capacity)}
}

// Append records one result.
func (c *Collector) Append(res ScanResult) {
	c.mu.Lock()
	c.results = append(c.results, res)
	c.mu.Unlock()
}

// Len reports how many results have been collected so far. Safe to call
// while workers are still running.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

// Results returns a copy of everything collected so far.
func (c *Collector) Results() []ScanResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ScanResult, len(c.results))
	copy(out, c.results)
	return out
}
