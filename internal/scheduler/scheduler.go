package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"newsbrief/internal/domain"
)

const (
	DefaultWarmSpec       = "0 * * * *"
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0
	warmFeedsTimeout      = 15 * time.Minute
)

type FeedSummarizer interface {
	SummarizeFeed(ctx context.Context, feedURL string, limit int, sentenceCount int) (domain.FeedBrief, error)
}

// Scheduler periodically summarizes the configured feeds so that their
// articles and summaries are already cached when users ask for them.
type Scheduler struct {
	ctx     context.Context
	cron    *cron.Cron
	spec    string
	feeds   []string
	service FeedSummarizer
	log     *slog.Logger
}

func New(
	ctx context.Context,
	service FeedSummarizer,
	feeds []string,
	spec string,
	log *slog.Logger,
) *Scheduler {
	if spec == "" {
		spec = DefaultWarmSpec
	}

	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:     ctx,
		cron:    c,
		spec:    spec,
		feeds:   feeds,
		service: service,
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.warmFeeds); err != nil {
		return fmt.Errorf("add cron func (spec = %s): %w", s.spec, err)
	}

	s.cron.Start()

	return nil
}

// Stop stops the cron and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) warmFeeds() {
	ctx, cancel := context.WithTimeout(s.ctx, warmFeedsTimeout)
	defer cancel()

	start := time.Now()

	var summarized, failed int

	for _, feedURL := range s.feeds {
		if ctx.Err() != nil {
			s.log.InfoContext(ctx, "Scheduler context is done",
				"error", ctx.Err())
			return
		}

		fb, err := s.service.SummarizeFeed(ctx, feedURL, 0, 0)
		if err != nil {
			s.log.ErrorContext(ctx, "Failed to warm feed",
				"error", err,
				"feedURL", feedURL)

			continue
		}

		for _, item := range fb.Items {
			if item.Err != nil {
				failed++
			} else {
				summarized++
			}
		}
	}

	s.log.InfoContext(ctx, "Feeds are warmed",
		"feedCount", len(s.feeds),
		"summarizedItems", summarized,
		"failedItems", failed,
		"durationMs", time.Since(start).Milliseconds())
}
