package brief

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"newsbrief/internal/article"
	"newsbrief/internal/domain"
	"newsbrief/internal/feed"
	"newsbrief/internal/summarizer"
)

const feedSummariesMaxParallelism = 4

type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (domain.Article, error)
}

type FeedReader interface {
	Latest(ctx context.Context, feedURL string, limit int) (feed.Feed, error)
}

type Options struct {
	DefaultSentences int
	MaxSentences     int
	FeedItemLimit    int
}

// Service runs the fetch then summarize pipeline shared by every surface.
type Service struct {
	fetcher    ArticleFetcher
	summarizer summarizer.Summarizer
	feeds      FeedReader
	opts       Options
	log        *slog.Logger
}

func NewService(
	fetcher ArticleFetcher,
	s summarizer.Summarizer,
	feeds FeedReader,
	opts Options,
	log *slog.Logger,
) *Service {
	if opts.DefaultSentences <= 0 {
		opts.DefaultSentences = summarizer.DefaultSentenceCount
	}
	if opts.MaxSentences < opts.DefaultSentences {
		opts.MaxSentences = opts.DefaultSentences
	}
	if opts.FeedItemLimit <= 0 {
		opts.FeedItemLimit = 5
	}

	return &Service{
		fetcher:    fetcher,
		summarizer: s,
		feeds:      feeds,
		opts:       opts,
		log:        log,
	}
}

// SummarizeURL fetches the article at rawURL and summarizes it. A zero
// sentenceCount selects the configured default.
func (s *Service) SummarizeURL(
	ctx context.Context,
	rawURL string,
	sentenceCount int,
) (domain.Brief, error) {
	rawURL = strings.TrimSpace(rawURL)

	sentenceCount, err := s.validate(rawURL, sentenceCount)
	if err != nil {
		return domain.Brief{}, err
	}

	start := time.Now()

	art, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return domain.Brief{}, fmt.Errorf("fetch: %w", err)
	}

	summary, err := s.summarizer.Summarize(ctx, summarizer.Input{
		Text:          art.Text,
		SentenceCount: sentenceCount,
	})
	if err != nil {
		return domain.Brief{}, fmt.Errorf("summarize: %w", err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return domain.Brief{}, fmt.Errorf("summarize (URL = %s): %w", rawURL, domain.ErrEmptySummary)
	}

	s.log.DebugContext(ctx, "Article is summarized",
		"url", rawURL,
		"sentenceCount", sentenceCount,
		"textLen", len(art.Text),
		"summaryLen", len(summary),
		"durationMs", time.Since(start).Milliseconds())

	return domain.Brief{
		URL:     rawURL,
		Title:   art.Title,
		Summary: summary,
	}, nil
}

// SummarizeFeed summarizes the newest items of a feed one by one. Item
// failures are reported on the item and do not fail the call.
func (s *Service) SummarizeFeed(
	ctx context.Context,
	feedURL string,
	limit int,
	sentenceCount int,
) (domain.FeedBrief, error) {
	feedURL = strings.TrimSpace(feedURL)

	sentenceCount, err := s.validate(feedURL, sentenceCount)
	if err != nil {
		return domain.FeedBrief{}, err
	}

	if limit < 0 {
		return domain.FeedBrief{}, fmt.Errorf("limit %d: %w", limit, ErrLimitOutOfRange)
	}
	if limit == 0 || limit > s.opts.FeedItemLimit {
		limit = s.opts.FeedItemLimit
	}

	parsed, err := s.feeds.Latest(ctx, feedURL, limit)
	if err != nil {
		return domain.FeedBrief{}, fmt.Errorf("read feed: %w", errors.Join(domain.ErrFetch, err))
	}

	items := make([]domain.FeedItemBrief, len(parsed.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(feedSummariesMaxParallelism)

	for i, item := range parsed.Items {
		g.Go(func() error {
			items[i] = s.summarizeFeedItem(gctx, item, sentenceCount)
			return nil
		})
	}

	_ = g.Wait()

	return domain.FeedBrief{
		URL:   parsed.URL,
		Title: parsed.Title,
		Items: items,
	}, nil
}

func (s *Service) summarizeFeedItem(
	ctx context.Context,
	item feed.Item,
	sentenceCount int,
) domain.FeedItemBrief {
	result := domain.FeedItemBrief{
		Title: item.Title,
		URL:   item.URL,
	}

	b, err := s.SummarizeURL(ctx, item.URL, sentenceCount)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to summarize feed item",
			"error", err,
			"url", item.URL,
			"title", item.Title)

		result.Err = err

		return result
	}

	result.Summary = b.Summary

	return result
}

func (s *Service) validate(rawURL string, sentenceCount int) (int, error) {
	if rawURL == "" {
		return 0, ErrURLRequired
	}

	if _, err := article.ValidateURL(rawURL); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if sentenceCount == 0 {
		sentenceCount = s.opts.DefaultSentences
	}

	if sentenceCount < 1 || sentenceCount > s.opts.MaxSentences {
		return 0, fmt.Errorf("sentence count %d: %w", sentenceCount, ErrSentenceCountOutOfRange)
	}

	return sentenceCount, nil
}
