package nlp

import (
	"bufio"
	"embed"
	"fmt"
	"strings"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"golang.org/x/text/cases"
)

//go:embed stopwords/english.txt
var stopwordsFS embed.FS

// Tokenizer splits English text into sentences and case-folded word tokens.
// It is safe for concurrent use once built.
type Tokenizer struct {
	sentences *sentences.DefaultSentenceTokenizer
	stopwords map[string]struct{}
}

// New loads the Punkt sentence model and the stopword list. Call it once at
// startup; both resources are read-only afterwards.
func New() (*Tokenizer, error) {
	st, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("create sentence tokenizer: %w", err)
	}

	stopwords, err := loadStopwords("stopwords/english.txt")
	if err != nil {
		return nil, fmt.Errorf("load stopwords: %w", err)
	}

	return &Tokenizer{
		sentences: st,
		stopwords: stopwords,
	}, nil
}

func (t *Tokenizer) Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	found := t.sentences.Tokenize(text)
	result := make([]string, 0, len(found))

	for _, s := range found {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed == "" {
			continue
		}

		result = append(result, trimmed)
	}

	return result
}

// Words returns the case-folded alphanumeric words of text, in order.
// Surrounding punctuation is trimmed, contractions keep their head ("don't"
// gives "do") and words with inner punctuation such as "well-known" or "3.5"
// are dropped.
func (t *Tokenizer) Words(text string) []string {
	folded := cases.Fold().String(text)

	var words []string

	for field := range strings.FieldsSeq(folded) {
		word := contractionHead(strings.TrimFunc(field, notAlnum))
		if word == "" || strings.IndexFunc(word, notAlnum) >= 0 {
			continue
		}

		words = append(words, word)
	}

	return words
}

func contractionHead(word string) string {
	i := strings.IndexAny(word, "'’")
	if i < 0 {
		return word
	}

	head, tail := word[:i], word[i:]
	if (tail == "'t" || tail == "’t") && strings.HasSuffix(head, "n") {
		head = strings.TrimSuffix(head, "n")
	}

	return head
}

func notAlnum(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func (t *Tokenizer) IsStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

func loadStopwords(path string) (map[string]struct{}, error) {
	f, err := stopwordsFS.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	words := make(map[string]struct{})

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}

		words[word] = struct{}{}
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	return words, nil
}
