package summarizer

import (
	"context"
)

const DefaultSentenceCount = 3

// Input describes the payload for a summary request.
type Input struct {
	// Text contains the original plain text to summarise.
	Text string
	// SentenceCount is the number of sentences to keep.
	SentenceCount int
}

// Summarizer produces a single summary for a given input text.
// An empty summary with a nil error means the text had nothing to score.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}
