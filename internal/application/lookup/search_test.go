package lookup_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"clubdesk/internal/application/lookup"
)

// recorder collects delivered results.
type recorder struct {
	mu      sync.Mutex
	queries []string
	last    []lookup.Suggestion
}

func (r *recorder) deliver(query string, items []lookup.Suggestion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, query)
	r.last = items
}

func (r *recorder) delivered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.queries))
	copy(out, r.queries)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// TestSearcherDebouncesBurst verifies a typing burst produces one backend
// query carrying the final text.
func TestSearcherDebouncesBurst(t *testing.T) {
	var mu sync.Mutex
	var fetched []string
	rec := &recorder{}
	s := lookup.NewSearcher(lookup.SearcherDeps{
		Fetch: func(ctx context.Context, query string) ([]lookup.Suggestion, error) {
			mu.Lock()
			fetched = append(fetched, query)
			mu.Unlock()
			return []lookup.Suggestion{{ID: "p1", Label: query}}, nil
		},
		Deliver: rec.deliver,
		Delay:   20 * time.Millisecond,
	})
	defer s.Close()

	s.Update("a")
	s.Update("an")
	s.Update("ana")

	waitFor(t, func() bool { return len(rec.delivered()) == 1 })
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fetched) != 1 || fetched[0] != "ana" {
		t.Errorf("fetched = %v, want one query for ana", fetched)
	}
	if got := rec.delivered(); len(got) != 1 || got[0] != "ana" {
		t.Errorf("delivered = %v", got)
	}
}

// TestSearcherDiscardsStaleResponse verifies a slow early response never
// overwrites the result of a later query.
func TestSearcherDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	rec := &recorder{}
	s := lookup.NewSearcher(lookup.SearcherDeps{
		Fetch: func(ctx context.Context, query string) ([]lookup.Suggestion, error) {
			if query == "slow" {
				<-release
			}
			return []lookup.Suggestion{{ID: query, Label: query}}, nil
		},
		Deliver: rec.deliver,
		Delay:   time.Millisecond,
	})
	defer s.Close()

	s.Update("slow")
	time.Sleep(30 * time.Millisecond) // let "slow" dispatch and block
	s.Update("fast")

	waitFor(t, func() bool {
		for _, q := range rec.delivered() {
			if q == "fast" {
				return true
			}
		}
		return false
	})
	close(release)
	time.Sleep(50 * time.Millisecond)

	for _, q := range rec.delivered() {
		if q == "slow" {
			t.Errorf("stale response delivered: %v", rec.delivered())
		}
	}
}

// TestSearcherEmptyQueryClears verifies clearing the field cancels pending
// work and delivers an empty result immediately.
func TestSearcherEmptyQueryClears(t *testing.T) {
	fetchCalls := 0
	rec := &recorder{}
	s := lookup.NewSearcher(lookup.SearcherDeps{
		Fetch: func(ctx context.Context, query string) ([]lookup.Suggestion, error) {
			fetchCalls++
			return nil, nil
		},
		Deliver: rec.deliver,
		Delay:   50 * time.Millisecond,
	})
	defer s.Close()

	s.Update("ana")
	s.Update("")

	waitFor(t, func() bool { return len(rec.delivered()) == 1 })
	time.Sleep(80 * time.Millisecond)

	if got := rec.delivered(); len(got) != 1 || got[0] != "" {
		t.Errorf("delivered = %v, want one empty delivery", got)
	}
	if fetchCalls != 0 {
		t.Errorf("fetch ran %d times after the query was cleared", fetchCalls)
	}
}

// TestSearcherCloseStopsWork verifies no delivery happens after Close.
func TestSearcherCloseStopsWork(t *testing.T) {
	rec := &recorder{}
	s := lookup.NewSearcher(lookup.SearcherDeps{
		Fetch: func(ctx context.Context, query string) ([]lookup.Suggestion, error) {
			return []lookup.Suggestion{{ID: "p1", Label: query}}, nil
		},
		Deliver: rec.deliver,
		Delay:   10 * time.Millisecond,
	})

	s.Update("ana")
	s.Close()
	time.Sleep(50 * time.Millisecond)

	if got := rec.delivered(); len(got) != 0 {
		t.Errorf("delivered after close: %v", got)
	}
}
