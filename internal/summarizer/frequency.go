package summarizer

import (
	"cmp"
	"context"
	"slices"
	"strings"
)

// Tokenizer is the text segmentation the frequency summarizer depends on.
type Tokenizer interface {
	Sentences(text string) []string
	Words(text string) []string
	IsStopword(word string) bool
}

// FrequencySummarizer picks the sentences whose words occur most often in the
// whole text and returns them in their original order.
type FrequencySummarizer struct {
	tokenizer Tokenizer
}

func NewFrequencySummarizer(tokenizer Tokenizer) *FrequencySummarizer {
	return &FrequencySummarizer{tokenizer: tokenizer}
}

func (s *FrequencySummarizer) Summarize(
	_ context.Context,
	input Input,
) (string, error) {
	if strings.TrimSpace(input.Text) == "" || input.SentenceCount <= 0 {
		return "", nil
	}

	sentences := s.tokenizer.Sentences(input.Text)
	if len(sentences) == 0 {
		return "", nil
	}

	freq := s.frequencies(input.Text)
	if len(freq) == 0 {
		return "", nil
	}

	selected := topSentences(s.scoreSentences(sentences, freq), input.SentenceCount)

	parts := make([]string, 0, len(selected))
	for _, i := range selected {
		parts = append(parts, sentences[i])
	}

	return strings.Join(parts, " "), nil
}

func (s *FrequencySummarizer) frequencies(text string) map[string]int {
	freq := make(map[string]int)

	for _, word := range s.tokenizer.Words(text) {
		if s.tokenizer.IsStopword(word) {
			continue
		}

		freq[word]++
	}

	return freq
}

func (s *FrequencySummarizer) scoreSentences(sentences []string, freq map[string]int) []int {
	scores := make([]int, len(sentences))

	for i, sentence := range sentences {
		for _, word := range s.tokenizer.Words(sentence) {
			scores[i] += freq[word]
		}
	}

	return scores
}

// topSentences returns the indices of the n highest scores in ascending index
// order. Equal scores keep the lower index.
func topSentences(scores []int, n int) []int {
	indices := make([]int, len(scores))
	for i := range indices {
		indices[i] = i
	}

	slices.SortStableFunc(indices, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})

	if n < len(indices) {
		indices = indices[:n]
	}

	slices.Sort(indices)

	return indices
}
