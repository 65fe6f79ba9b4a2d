package summarizer

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
)

type stubSummarizer struct {
	mu      sync.Mutex
	calls   int
	summary string
	err     error
}

func (s *stubSummarizer) Summarize(_ context.Context, _ Input) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	return s.summary, s.err
}

func (s *stubSummarizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

func TestCachedSummarizerUsesCache(t *testing.T) {
	stub := &stubSummarizer{summary: "cached summary"}
	s := NewCached(stub, SummaryCacheMaxEntries)
	ctx := context.Background()
	input := Input{Text: "Example text.", SentenceCount: 3}

	first, err := s.Summarize(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := s.Summarize(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != "cached summary" || second != first {
		t.Fatalf("unexpected summaries: %q, %q", first, second)
	}

	if got := stub.callCount(); got != 1 {
		t.Fatalf("expected summarizer to be called once, got %d", got)
	}
}

func TestCachedSummarizerKeysBySentenceCount(t *testing.T) {
	stub := &stubSummarizer{summary: "summary"}
	s := NewCached(stub, SummaryCacheMaxEntries)
	ctx := context.Background()

	for _, n := range []int{1, 2, 1, 2} {
		if _, err := s.Summarize(ctx, Input{Text: "Example text.", SentenceCount: n}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := stub.callCount(); got != 2 {
		t.Fatalf("expected one call per sentence count, got %d", got)
	}
}

func TestCachedSummarizerEvictsLeastRecentlyUsed(t *testing.T) {
	stub := &stubSummarizer{summary: "summary"}
	s := NewCached(stub, 2)
	ctx := context.Background()

	for _, text := range []string{"a", "b", "a", "c", "a", "b"} {
		if _, err := s.Summarize(ctx, Input{Text: text, SentenceCount: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// a, b, c miss; the second "a" hits; "c" evicts "b"; the third "a" hits;
	// the final "b" misses.
	if got := stub.callCount(); got != 4 {
		t.Fatalf("expected 4 summarizer calls, got %d", got)
	}

	if got := s.Len(); got != 2 {
		t.Fatalf("expected cache to hold 2 entries, got %d", got)
	}
}

func TestCachedSummarizerDoesNotCacheErrors(t *testing.T) {
	stub := &stubSummarizer{err: errors.New("boom")}
	s := NewCached(stub, SummaryCacheMaxEntries)
	ctx := context.Background()
	input := Input{Text: "Example text.", SentenceCount: 3}

	for range 2 {
		if _, err := s.Summarize(ctx, input); err == nil {
			t.Fatalf("expected error")
		}
	}

	if got := stub.callCount(); got != 2 {
		t.Fatalf("expected failed summaries to be retried, got %d calls", got)
	}

	if got := s.Len(); got != 0 {
		t.Fatalf("expected empty cache, got %d entries", got)
	}
}

func TestCacheKeyDiffersByText(t *testing.T) {
	a := cacheKey(Input{Text: "a", SentenceCount: 3})
	b := cacheKey(Input{Text: "b", SentenceCount: 3})
	c := cacheKey(Input{Text: "a", SentenceCount: 4})

	if a == b || a == c {
		t.Fatalf("expected distinct cache keys, got %q, %q, %q", a, b, c)
	}
}

func TestTopSentences(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		n      int
		want   []int
	}{
		{"highest scores in source order", []int{1, 5, 3, 4}, 2, []int{1, 3}},
		{"ties keep lower index", []int{3, 3, 2, 3}, 2, []int{0, 1}},
		{"n above length", []int{2, 1}, 5, []int{0, 1}},
		{"zero scores", []int{0, 0, 0}, 1, []int{0}},
		{"empty", nil, 3, []int{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := topSentences(test.scores, test.n)
			if !slices.Equal(got, test.want) {
				t.Fatalf("got %v, want %v", got, test.want)
			}
		})
	}
}
