package batch

import "sync"

// Stats aggregates conversion outcomes for one batch run. Increments are
// mutually exclusive across workers; total is fixed at enumeration time.
type Stats struct {
	mu        sync.Mutex
	total     int
	succeeded int
	failed    int
}

// NewStats creates a stats aggregate for a run of the given size.
func NewStats(total int) *Stats {
	return &Stats{total: total}
}

// Success records one converted or skipped-up-to-date item.
func (s *Stats) Success() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.succeeded++
}

// Failure records one failed item.
func (s *Stats) Failure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed++
}

// Total returns the number of items enumerated for the run.
func (s *Stats) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Succeeded returns the number of successful items so far.
func (s *Stats) Succeeded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.succeeded
}

// Failed returns the number of failed items so far.
func (s *Stats) Failed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}
