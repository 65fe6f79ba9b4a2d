package summarizer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"newsbrief/internal/cache"
)

const SummaryCacheMaxEntries = 128

// Cached memoizes another Summarizer by exact (text, sentence count).
// Entries never expire, so lookups pass a zero time.
type Cached struct {
	next  Summarizer
	cache *cache.LRU[string]
}

func NewCached(next Summarizer, maxEntries int) *Cached {
	return &Cached{
		next:  next,
		cache: cache.New[string](maxEntries, 0),
	}
}

func (c *Cached) Summarize(ctx context.Context, input Input) (string, error) {
	key := cacheKey(input)

	if summary, ok := c.cache.Get(key, time.Time{}); ok {
		return summary, nil
	}

	summary, err := c.next.Summarize(ctx, input)
	if err != nil {
		return "", err
	}

	c.cache.Set(key, summary, time.Time{})

	return summary, nil
}

func (c *Cached) Len() int {
	return c.cache.Len()
}

func cacheKey(input Input) string {
	hash := sha256.Sum256([]byte(input.Text))

	return strconv.Itoa(input.SentenceCount) + "|" + hex.EncodeToString(hash[:])
}
