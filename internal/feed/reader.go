package feed

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	readerClientTimeout = 20 * time.Second
)

type Item struct {
	Title     string
	URL       string
	Published time.Time
}

type Feed struct {
	URL   string
	Title string
	Items []Item
}

// Reader parses RSS, Atom and JSON feeds.
type Reader struct {
	libParser *gofeed.Parser
	log       *slog.Logger
}

func NewReader(client *http.Client, log *slog.Logger) *Reader {
	if client == nil {
		client = &http.Client{Timeout: readerClientTimeout}
	}

	libParser := gofeed.NewParser()
	libParser.Client = client
	libParser.UserAgent = userAgent

	return &Reader{
		libParser: libParser,
		log:       log,
	}
}

// Latest returns up to limit items with links, newest first. Items without a
// date keep their feed order after dated ones.
func (r *Reader) Latest(ctx context.Context, feedURL string, limit int) (Feed, error) {
	feedURL = strings.TrimSpace(feedURL)

	parsed, err := r.libParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return Feed{}, fmt.Errorf("parse feed (URL = %s): %w", feedURL, err)
	}

	title := strings.TrimSpace(parsed.Title)
	if title == "" {
		r.log.WarnContext(ctx, "Empty feed title",
			"feedURL", feedURL,
			"fallbackTitle", feedURL)

		title = feedURL
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		item, ok := r.parseFeedItem(ctx, feedURL, it)
		if !ok {
			continue
		}

		items = append(items, item)
	}

	slices.SortStableFunc(items, func(a, b Item) int {
		switch {
		case a.Published.IsZero() && b.Published.IsZero():
			return 0
		case a.Published.IsZero():
			return 1
		case b.Published.IsZero():
			return -1
		default:
			return cmp.Compare(b.Published.UnixNano(), a.Published.UnixNano())
		}
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return Feed{URL: feedURL, Title: title, Items: items}, nil
}

func (r *Reader) parseFeedItem(ctx context.Context, feedURL string, item *gofeed.Item) (Item, bool) {
	if item == nil {
		return Item{}, false
	}

	postURL := strings.TrimSpace(item.Link)
	postTitle := strings.TrimSpace(item.Title)

	if postURL == "" {
		r.log.WarnContext(ctx, "Skipping feed item with empty URL",
			"feedURL", feedURL,
			"itemTitle", postTitle)

		return Item{}, false
	}

	if postTitle == "" {
		postTitle = postURL
	}

	var published time.Time
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	return Item{
		Title:     postTitle,
		URL:       postURL,
		Published: published,
	}, true
}
