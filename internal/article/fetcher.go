package article

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"newsbrief/internal/cache"
	"newsbrief/internal/domain"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	ArticleCacheMaxEntries = 128
	DefaultTimeout         = 20 * time.Second
	DefaultMaxBytes        = 10 << 20
)

var (
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrBodyTooLarge           = errors.New("response body is too large")
)

type Options struct {
	Client          *http.Client
	Timeout         time.Duration
	MaxBytes        int64
	CacheMaxEntries int
	CacheTTL        time.Duration
}

// Fetcher downloads articles and extracts their plain text. Successful
// results are cached by exact URL; failures are not.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
	cache    *cache.LRU[domain.Article]
	group    singleflight.Group
	now      func() time.Time
	log      *slog.Logger
}

func NewFetcher(opts Options, log *slog.Logger) *Fetcher {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &Fetcher{
		client:   client,
		maxBytes: maxBytes,
		cache:    cache.New[domain.Article](opts.CacheMaxEntries, opts.CacheTTL),
		now:      time.Now,
		log:      log,
	}
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("URL is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if u.Host == "" {
		return nil, errors.New("URL host is empty")
	}

	return u, nil
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (domain.Article, error) {
	if cached, ok := f.cache.Get(rawURL, f.now()); ok {
		f.log.DebugContext(ctx, "Article cache hit",
			"url", rawURL)

		return cached, nil
	}

	// The shared download must outlive any single caller; it is still bounded
	// by the client timeout.
	ch := f.group.DoChan(rawURL, func() (any, error) {
		result, err := f.download(context.WithoutCancel(ctx), rawURL)
		if err != nil {
			return nil, err
		}

		f.cache.Set(rawURL, result, f.now())

		return result, nil
	})

	select {
	case <-ctx.Done():
		return domain.Article{}, &FetchError{URL: rawURL, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return domain.Article{}, res.Err
		}

		result, ok := res.Val.(domain.Article)
		if !ok {
			return domain.Article{}, &FetchError{URL: rawURL, Err: fmt.Errorf("unexpected result type %T", res.Val)}
		}

		return result, nil
	}
}

func (f *Fetcher) download(ctx context.Context, rawURL string) (domain.Article, error) {
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		return domain.Article{}, &FetchError{URL: rawURL, Err: err}
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return domain.Article{}, &FetchError{URL: rawURL, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,text/plain;q=0.8")

	resp, err := f.client.Do(req) //nolint:gosec // URL is validated above
	if err != nil {
		return domain.Article{}, &FetchError{URL: rawURL, Err: fmt.Errorf("do request: %w", err)}
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			f.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"url", rawURL,
				"operation", "download")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return domain.Article{}, &FetchError{
			URL: rawURL,
			Err: fmt.Errorf("do request: unexpected status: %d", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return domain.Article{}, &FetchError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}

	if int64(len(data)) > f.maxBytes {
		return domain.Article{}, &FetchError{
			URL: rawURL,
			Err: fmt.Errorf("%w (limit = %d)", ErrBodyTooLarge, f.maxBytes),
		}
	}

	// Redirects change the base for relative links.
	finalURL := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	var result domain.Article

	switch mediaType := contentType(resp.Header.Get("Content-Type")); mediaType {
	case "", "text/html", "application/xhtml+xml":
		result, err = extractHTML(data, finalURL)
	case "text/plain":
		result, err = extractPlainText(data, finalURL)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedContentType, mediaType)
	}

	if err != nil {
		return domain.Article{}, &FetchError{URL: rawURL, Err: fmt.Errorf("extract article: %w", err)}
	}

	result.URL = rawURL

	f.log.InfoContext(ctx, "Article is fetched",
		"url", rawURL,
		"finalURL", finalURL.String(),
		"title", result.Title,
		"textLen", len(result.Text),
		"bodyLen", len(data),
		"durationMs", time.Since(start).Milliseconds())

	return result, nil
}

func contentType(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}

	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(header))
	}

	return mediaType
}
