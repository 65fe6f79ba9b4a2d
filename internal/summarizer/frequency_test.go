package summarizer_test

import (
	"context"
	"strings"
	"testing"

	"newsbrief/internal/nlp"
	"newsbrief/internal/summarizer"
)

const animalsText = "Cats are mammals. Dogs are mammals too. Birds can fly. Fish live in water."

func newFrequencySummarizer(t *testing.T) *summarizer.FrequencySummarizer {
	t.Helper()

	tok, err := nlp.New()
	if err != nil {
		t.Fatalf("create tokenizer: %v", err)
	}

	return summarizer.NewFrequencySummarizer(tok)
}

func summarize(t *testing.T, s summarizer.Summarizer, text string, n int) string {
	t.Helper()

	summary, err := s.Summarize(context.Background(), summarizer.Input{Text: text, SentenceCount: n})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return summary
}

func TestFrequencySummarizerPicksSharedKeywords(t *testing.T) {
	s := newFrequencySummarizer(t)

	got := summarize(t, s, animalsText, 2)
	want := "Cats are mammals. Dogs are mammals too."

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFrequencySummarizerKeepsSourceOrder(t *testing.T) {
	s := newFrequencySummarizer(t)

	text := "The weather was mild. " +
		"Rockets launch rockets while engineers test rockets and rockets again. " +
		"Lunch was served at noon. " +
		"Engineers said rockets were ready."

	got := summarize(t, s, text, 2)
	want := "Rockets launch rockets while engineers test rockets and rockets again. " +
		"Engineers said rockets were ready."

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFrequencySummarizerReturnsAllSentencesWhenCountIsLarge(t *testing.T) {
	s := newFrequencySummarizer(t)

	for _, n := range []int{4, 5, 100} {
		if got := summarize(t, s, animalsText, n); got != animalsText {
			t.Fatalf("n = %d: got %q, want every sentence in order", n, got)
		}
	}
}

func TestFrequencySummarizerIncludesZeroScoreSentences(t *testing.T) {
	s := newFrequencySummarizer(t)

	text := "Volcanoes erupt lava. It is what it is."

	if got := summarize(t, s, text, 2); got != text {
		t.Fatalf("got %q, want %q", got, text)
	}
}

func TestFrequencySummarizerEmptyInput(t *testing.T) {
	s := newFrequencySummarizer(t)

	for _, n := range []int{-1, 0, 1, 3, 50} {
		if got := summarize(t, s, "", n); got != "" {
			t.Fatalf("n = %d: expected empty summary, got %q", n, got)
		}
	}
}

func TestFrequencySummarizerNonPositiveCount(t *testing.T) {
	s := newFrequencySummarizer(t)

	for _, n := range []int{0, -3} {
		if got := summarize(t, s, animalsText, n); got != "" {
			t.Fatalf("n = %d: expected empty summary, got %q", n, got)
		}
	}
}

func TestFrequencySummarizerOnlyStopwords(t *testing.T) {
	s := newFrequencySummarizer(t)

	if got := summarize(t, s, "It is what it is. And so on, and so it was!!!", 3); got != "" {
		t.Fatalf("expected empty summary for text without scorable words, got %q", got)
	}
}

func TestFrequencySummarizerIsDeterministic(t *testing.T) {
	s := newFrequencySummarizer(t)

	text := strings.Repeat("Markets rallied today. Investors cheered markets. ", 5) +
		"Analysts urged caution on markets."

	first := summarize(t, s, text, 3)
	for range 10 {
		if got := summarize(t, s, text, 3); got != first {
			t.Fatalf("expected identical output, got %q and %q", first, got)
		}
	}
}
