package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"newsbrief/internal/api"
	"newsbrief/internal/article"
	"newsbrief/internal/bot"
	"newsbrief/internal/brief"
	"newsbrief/internal/config"
	"newsbrief/internal/feed"
	"newsbrief/internal/nlp"
	"newsbrief/internal/ratelimiter"
	"newsbrief/internal/scheduler"
	"newsbrief/internal/summarizer"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.ErrorContext(ctx, "Failed to load .env file",
				"error", err)

			return
		}
	} else {
		log.InfoContext(ctx, ".env file is loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	service, err := initService(cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize service",
			"error", err)

		return
	}
	log.InfoContext(ctx, "Service is initialized",
		"articleCacheSize", cfg.ArticleCacheSize,
		"summaryCacheSize", cfg.SummaryCacheSize,
		"defaultSentences", cfg.DefaultSentences,
		"maxSentences", cfg.MaxSentences)

	gin.SetMode(gin.ReleaseMode)

	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(service, api.Options{
			DefaultSentences: cfg.DefaultSentences,
			MaxSentences:     cfg.MaxSentences,
		}, log),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()
	log.InfoContext(ctx, "HTTP server is started",
		"addr", cfg.HTTPAddr)

	botInst := startBot(ctx, cfg, service, log)
	sched := startScheduler(ctx, cfg, service, log)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case err = <-serverErr:
		log.ErrorContext(ctx, "HTTP server failed",
			"error", err,
			"addr", cfg.HTTPAddr)
	}
	cancel()

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "Failed to shut down HTTP server",
			"error", err)
	}

	if sched != nil {
		sched.Stop()
		log.InfoContext(shutdownCtx, "Scheduler is stopped")
	}

	if botInst != nil {
		botInst.Stop()
		log.InfoContext(shutdownCtx, "Bot is stopped",
			"uptimeSeconds", time.Since(start).Seconds())
	}
}

func initService(cfg config.Config, log *slog.Logger) (*brief.Service, error) {
	tok, err := nlp.New()
	if err != nil {
		return nil, err
	}

	fetcher := article.NewFetcher(article.Options{
		Timeout:         cfg.FetchTimeout,
		MaxBytes:        cfg.FetchMaxBytes,
		CacheMaxEntries: cfg.ArticleCacheSize,
		CacheTTL:        cfg.ArticleCacheTTL,
	}, log)

	s := summarizer.NewCached(summarizer.NewFrequencySummarizer(tok), cfg.SummaryCacheSize)

	reader := feed.NewReader(&http.Client{Timeout: cfg.FetchTimeout}, log)

	return brief.NewService(fetcher, s, reader, brief.Options{
		DefaultSentences: cfg.DefaultSentences,
		MaxSentences:     cfg.MaxSentences,
		FeedItemLimit:    cfg.FeedItemLimit,
	}, log), nil
}

func startBot(ctx context.Context, cfg config.Config, service *brief.Service, log *slog.Logger) *bot.Bot {
	if cfg.TelegramToken == "" {
		log.InfoContext(ctx, "TELEGRAM_TOKEN is empty so bot is disabled",
			"envVar", "TELEGRAM_TOKEN")

		return nil
	}

	botInst, err := bot.New(cfg.TelegramToken, service, bot.Options{
		AllowedUsers: cfg.AllowedUsers,
		Rates: ratelimiter.Rates{
			PrivateChat: cfg.PrivateChatRate,
			GroupChat:   cfg.GroupChatRate,
		},
	}, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize bot so it is disabled",
			"error", err,
			"allowedUsersCount", len(cfg.AllowedUsers))

		return nil
	}
	log.InfoContext(ctx, "Bot is initialized",
		"allowedUsersCount", len(cfg.AllowedUsers))

	go botInst.Start(ctx)
	log.InfoContext(ctx, "Bot is started",
		"updateTimeoutSeconds", bot.BotUpdateTimeout)

	return botInst
}

func startScheduler(
	ctx context.Context,
	cfg config.Config,
	service *brief.Service,
	log *slog.Logger,
) *scheduler.Scheduler {
	if len(cfg.WarmFeeds) == 0 {
		return nil
	}

	sched := scheduler.New(ctx, service, cfg.WarmFeeds, cfg.WarmSpec, log)

	if err := sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", cfg.WarmSpec,
			"timezone", scheduler.Timezone)

		return nil
	}
	log.InfoContext(ctx, "Scheduler is started",
		"spec", cfg.WarmSpec,
		"timezone", scheduler.Timezone,
		"feedCount", len(cfg.WarmFeeds))

	return sched
}
