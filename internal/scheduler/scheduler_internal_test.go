package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"newsbrief/internal/domain"
)

type stubFeedSummarizer struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (s *stubFeedSummarizer) SummarizeFeed(
	_ context.Context,
	feedURL string,
	_ int,
	_ int,
) (domain.FeedBrief, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, feedURL)

	if s.fail[feedURL] {
		return domain.FeedBrief{}, errors.Join(domain.ErrFetch, errors.New("parse"))
	}

	return domain.FeedBrief{
		URL:   feedURL,
		Items: []domain.FeedItemBrief{{URL: feedURL + "/1", Summary: "Summary."}},
	}, nil
}

func (s *stubFeedSummarizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.calls)
}

func TestWarmFeedsVisitsEveryFeed(t *testing.T) {
	service := &stubFeedSummarizer{fail: map[string]bool{"https://example.com/broken": true}}
	feeds := []string{"https://example.com/rss", "https://example.com/broken", "https://example.com/atom"}

	s := New(context.Background(), service, feeds, "", slog.Default())
	s.warmFeeds()

	if got := service.callCount(); got != len(feeds) {
		t.Fatalf("expected %d feeds to be warmed, got %d", len(feeds), got)
	}
}

func TestWarmFeedsStopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := &stubFeedSummarizer{}

	s := New(ctx, service, []string{"https://example.com/rss"}, "", slog.Default())
	s.warmFeeds()

	if got := service.callCount(); got != 0 {
		t.Fatalf("expected no feeds to be warmed, got %d", got)
	}
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	s := New(context.Background(), &stubFeedSummarizer{}, nil, "not a spec", slog.Default())

	if err := s.Start(); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
}

func TestStartAndStop(t *testing.T) {
	s := New(context.Background(), &stubFeedSummarizer{}, nil, DefaultWarmSpec, slog.Default())

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Stop()
}
