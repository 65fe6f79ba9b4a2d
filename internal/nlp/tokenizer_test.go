package nlp_test

import (
	"slices"
	"testing"

	"newsbrief/internal/nlp"
)

func newTokenizer(t *testing.T) *nlp.Tokenizer {
	t.Helper()

	tok, err := nlp.New()
	if err != nil {
		t.Fatalf("create tokenizer: %v", err)
	}

	return tok
}

func TestSentences(t *testing.T) {
	tok := newTokenizer(t)

	got := tok.Sentences("Cats are mammals. Dogs are mammals too. Birds can fly. Fish live in water.")
	want := []string{
		"Cats are mammals.",
		"Dogs are mammals too.",
		"Birds can fly.",
		"Fish live in water.",
	}

	if !slices.Equal(got, want) {
		t.Fatalf("unexpected sentences: %q", got)
	}
}

func TestSentencesEmpty(t *testing.T) {
	tok := newTokenizer(t)

	if got := tok.Sentences("   \n\t "); len(got) != 0 {
		t.Fatalf("expected no sentences, got %q", got)
	}
}

func TestWords(t *testing.T) {
	tok := newTokenizer(t)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"punctuation is dropped", "Hello, World!", []string{"hello", "world"}},
		{"digits are kept", "In 2024 there were 3 launches.", []string{"in", "2024", "there", "were", "3", "launches"}},
		{"contractions keep head", "Don't stop, it's late", []string{"do", "stop", "it", "late"}},
		{"inner punctuation is dropped", "A well-known rate of 3.5 percent", []string{"a", "rate", "of", "percent"}},
		{"quotes and brackets are trimmed", `"Cats" (mostly)`, []string{"cats", "mostly"}},
		{"unicode letters", "Café CRÈME", []string{"café", "crème"}},
		{"empty", "  ... ", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := tok.Words(test.text)
			if !slices.Equal(got, test.want) {
				t.Fatalf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestIsStopword(t *testing.T) {
	tok := newTokenizer(t)

	for _, word := range []string{"the", "are", "too", "can", "in", "don", "t"} {
		if !tok.IsStopword(word) {
			t.Fatalf("expected %q to be a stopword", word)
		}
	}

	for _, word := range []string{"cats", "mammals", "water", "The"} {
		if tok.IsStopword(word) {
			t.Fatalf("expected %q not to be a stopword", word)
		}
	}
}
