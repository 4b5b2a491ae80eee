package internal

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a scheduled search runs
const DefaultDebounce = 300 * time.Millisecond

// SearchFunc evaluates one search
type SearchFunc func(ctx context.Context, filters SearchFilters) ([]SearchResult, error)

// Delivery is a completed, non-stale search
type Delivery struct {
	Generation uint64
	Filters    SearchFilters
	Results    []SearchResult
}

// Scheduler debounces search requests on the trailing edge and delivers only
// the result of the most recently issued request. Each Schedule call bumps a
// generation counter; an evaluation whose generation is no longer current is
// discarded even if it finishes after a newer one.
type Scheduler struct {
	search  SearchFunc
	deliver func(Delivery)
	delay   time.Duration

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
	cancel     context.CancelFunc
	running    int
	closed     bool

	// deliverMu serializes deliveries so a stale result can never follow a newer one
	deliverMu sync.Mutex
}

// NewScheduler creates a Scheduler. A non-positive delay selects DefaultDebounce.
func NewScheduler(search SearchFunc, delay time.Duration, deliver func(Delivery)) *Scheduler {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if deliver == nil {
		deliver = func(Delivery) {}
	}
	return &Scheduler{
		search:  search,
		deliver: deliver,
		delay:   delay,
	}
}

// Schedule requests a search for filters, superseding any pending or in-flight one.
// It returns the generation assigned to this request.
func (s *Scheduler) Schedule(filters SearchFilters) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	gen := s.generation
	if s.closed {
		return gen
	}

	s.stopPendingLocked()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.timer = time.AfterFunc(s.delay, func() {
		s.run(ctx, gen, filters)
	})
	return gen
}

// Busy reports whether a search is pending or being evaluated
func (s *Scheduler) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil || s.running > 0
}

// Close cancels pending work. Results still in flight are discarded.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation++
	s.stopPendingLocked()
}

func (s *Scheduler) stopPendingLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	// Cancellation is advisory; the generation check below is what discards stale results.
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Scheduler) run(ctx context.Context, gen uint64, filters SearchFilters) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.running++
	s.mu.Unlock()

	results := s.evaluate(ctx, gen, filters)

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	// Busy stays true until the delivery callback has returned
	defer func() {
		s.mu.Lock()
		s.running--
		s.mu.Unlock()
	}()

	s.mu.Lock()
	current := gen == s.generation
	if current && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	if !current {
		LogDebug("Discarding stale search results (generation %d)", gen)
		return
	}
	s.deliver(Delivery{Generation: gen, Filters: filters, Results: results})
}

// evaluate runs the search, turning errors and panics into an empty result list
func (s *Scheduler) evaluate(ctx context.Context, gen uint64, filters SearchFilters) (results []SearchResult) {
	defer func() {
		if r := recover(); r != nil {
			LogError("Search failed (generation %d): %v", gen, fmt.Errorf("panic: %v", r))
			results = []SearchResult{}
		}
	}()

	results, err := s.search(ctx, filters)
	if err != nil {
		if ctx.Err() == nil {
			LogError("Search failed (generation %d): %v", gen, err)
		}
		return []SearchResult{}
	}
	if results == nil {
		results = []SearchResult{}
	}
	return results
}
