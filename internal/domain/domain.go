package domain

import "errors"

var (
	// ErrInvalidRequest marks caller errors such as a missing or malformed URL.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrFetch marks download or extraction failures. Retrying may succeed.
	ErrFetch = errors.New("fetch article")
	// ErrEmptySummary marks text without scorable content. Retrying will not help.
	ErrEmptySummary = errors.New("empty summary")
)

type Article struct {
	URL      string
	Title    string
	Byline   string
	SiteName string
	Excerpt  string
	Text     string
}

type Brief struct {
	URL     string
	Title   string
	Summary string
}

type FeedItemBrief struct {
	Title   string
	URL     string
	Summary string
	Err     error
}

type FeedBrief struct {
	URL   string
	Title string
	Items []FeedItemBrief
}
