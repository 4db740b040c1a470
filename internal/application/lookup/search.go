// Package lookup drives the wizard's async field helpers: debounced
// autocomplete search and postal-code address autofill.
package lookup

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultSearchDelay is the quiet period before a keystroke burst becomes
// one backend query.
const DefaultSearchDelay = 300 * time.Millisecond

// Suggestion is one autocomplete hit.
type Suggestion struct {
	ID    string
	Label string
}

// SearchFunc queries the backend for suggestions.
type SearchFunc func(ctx context.Context, query string) ([]Suggestion, error)

// DeliverFunc receives the suggestions for the query that produced them.
// Called from the searcher's goroutine.
type DeliverFunc func(query string, items []Suggestion)

// SearcherDeps holds dependencies for a Searcher.
type SearcherDeps struct {
	Fetch   SearchFunc
	Deliver DeliverFunc
	Logger  *slog.Logger

	Delay time.Duration
}

// Searcher turns a stream of partial queries into at most one in-flight
// backend search. Each dispatched query gets a monotonically increasing
// sequence number; a response is delivered only while its number is still
// the latest, so a slow early response can never overwrite a newer one.
type Searcher struct {
	deps SearcherDeps

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool

	seq atomic.Uint64
}

// NewSearcher creates a Searcher.
// PRE: deps.Fetch and deps.Deliver are non-nil
func NewSearcher(deps SearcherDeps) *Searcher {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Delay <= 0 {
		deps.Delay = DefaultSearchDelay
	}
	return &Searcher{deps: deps}
}

// Update feeds one keystroke's worth of query text. An empty query cancels
// any pending or in-flight search and delivers an empty result at once.
func (s *Searcher) Update(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if query == "" {
		// Invalidate anything still in flight.
		s.seq.Add(1)
		s.mu.Unlock()
		s.deps.Deliver("", nil)
		return
	}

	s.timer = time.AfterFunc(s.deps.Delay, func() { s.dispatch(query) })
	s.mu.Unlock()
}

// dispatch runs the backend search for query under a fresh sequence number.
func (s *Searcher) dispatch(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	mySeq := s.seq.Add(1)

	items, err := s.deps.Fetch(ctx, query)
	if mySeq != s.seq.Load() {
		// A newer query was dispatched while this one was in flight.
		return
	}
	if err != nil {
		if ctx.Err() == nil {
			s.deps.Logger.Warn("search_failed", "query", query, "error", err)
		}
		return
	}
	s.deps.Deliver(query, items)
}

// Close cancels pending work and rejects further updates.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq.Add(1)
}
