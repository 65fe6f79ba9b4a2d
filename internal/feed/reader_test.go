package feed_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsbrief/internal/feed"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Example News</title>
<link>https://example.com</link>
<item>
<title>Older story</title>
<link>https://example.com/older</link>
<pubDate>Mon, 06 Jan 2025 10:00:00 GMT</pubDate>
</item>
<item>
<title>Undated story</title>
<link>https://example.com/undated</link>
</item>
<item>
<title>Linkless story</title>
</item>
<item>
<title>Newest story</title>
<link>https://example.com/newest</link>
<pubDate>Wed, 08 Jan 2025 10:00:00 GMT</pubDate>
</item>
<item>
<link>https://example.com/untitled</link>
<pubDate>Tue, 07 Jan 2025 10:00:00 GMT</pubDate>
</item>
</channel>
</rss>`

func newFeedServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestReaderLatestOrdersAndFilters(t *testing.T) {
	server := newFeedServer(t, rssFeed, http.StatusOK)
	r := feed.NewReader(server.Client(), slog.Default())

	got, err := r.Latest(context.Background(), server.URL, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Title != "Example News" {
		t.Fatalf("unexpected title: %q", got.Title)
	}

	wantURLs := []string{
		"https://example.com/newest",
		"https://example.com/untitled",
		"https://example.com/older",
		"https://example.com/undated",
	}

	if len(got.Items) != len(wantURLs) {
		t.Fatalf("expected %d items, got %d", len(wantURLs), len(got.Items))
	}

	for i, want := range wantURLs {
		if got.Items[i].URL != want {
			t.Fatalf("item %d: got %q, want %q", i, got.Items[i].URL, want)
		}
	}

	if got.Items[1].Title != "https://example.com/untitled" {
		t.Fatalf("expected URL as fallback title, got %q", got.Items[1].Title)
	}
}

func TestReaderLatestLimit(t *testing.T) {
	server := newFeedServer(t, rssFeed, http.StatusOK)
	r := feed.NewReader(server.Client(), slog.Default())

	got, err := r.Latest(context.Background(), server.URL, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}

	if got.Items[0].URL != "https://example.com/newest" {
		t.Fatalf("expected newest item first, got %q", got.Items[0].URL)
	}
}

func TestReaderLatestInvalidFeed(t *testing.T) {
	server := newFeedServer(t, "<html><body>not a feed</body></html>", http.StatusOK)
	r := feed.NewReader(server.Client(), slog.Default())

	if _, err := r.Latest(context.Background(), server.URL, 0); err == nil {
		t.Fatalf("expected error for non-feed document")
	}
}

func TestReaderLatestHTTPError(t *testing.T) {
	server := newFeedServer(t, "", http.StatusNotFound)
	r := feed.NewReader(server.Client(), slog.Default())

	if _, err := r.Latest(context.Background(), server.URL, 0); err == nil {
		t.Fatalf("expected error for HTTP 404")
	}
}
