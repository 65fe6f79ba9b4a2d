package article

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"newsbrief/internal/domain"
)

const paragraphSelector = "p, li, blockquote, pre"

var errNoText = errors.New("no article text")

func extractHTML(data []byte, pageURL *url.URL) (domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return domain.Article{}, fmt.Errorf("create document from reader: %w", err)
	}

	result := domain.Article{URL: pageURL.String()}

	parsed, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err == nil {
		result.Title = strings.TrimSpace(parsed.Title)
		result.Byline = strings.TrimSpace(parsed.Byline)
		result.SiteName = strings.TrimSpace(parsed.SiteName)
		result.Excerpt = strings.TrimSpace(parsed.Excerpt)
		result.Text = readableText(parsed.Content, parsed.TextContent)
	}

	if result.Text == "" {
		result.Text = fallbackText(doc)
	}

	if result.Title == "" {
		result.Title = documentTitle(doc)
	}

	if result.Text == "" {
		if err != nil {
			return domain.Article{}, fmt.Errorf("parse readability: %w", err)
		}

		return domain.Article{}, errNoText
	}

	return result, nil
}

func extractPlainText(data []byte, pageURL *url.URL) (domain.Article, error) {
	text := normalizeText(string(data))
	if text == "" {
		return domain.Article{}, errNoText
	}

	return domain.Article{URL: pageURL.String(), Text: text}, nil
}

// readableText prefers block-level paragraphs of the readability content so
// that sentence boundaries between paragraphs survive.
func readableText(contentHTML string, textContent string) string {
	if contentHTML != "" {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
		if err == nil {
			if text := paragraphsText(doc.Selection); text != "" {
				return text
			}
		}
	}

	return normalizeText(textContent)
}

func fallbackText(doc *goquery.Document) string {
	if text := paragraphsText(doc.Find("article")); text != "" {
		return text
	}

	return paragraphsText(doc.Find("body"))
}

func paragraphsText(root *goquery.Selection) string {
	var paragraphs []string

	root.Find(paragraphSelector).Each(func(_ int, s *goquery.Selection) {
		// Nested blocks are collected on their own.
		if s.Find(paragraphSelector).Length() > 0 {
			return
		}

		fragment := strings.Join(strings.Fields(s.Text()), " ")
		if fragment == "" {
			return
		}

		paragraphs = append(paragraphs, fragment)
	})

	return strings.Join(paragraphs, "\n\n")
}

func documentTitle(doc *goquery.Document) string {
	if content, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		if title := strings.TrimSpace(content); title != "" {
			return title
		}
	}

	return strings.TrimSpace(doc.Find("title").First().Text())
}

func normalizeText(text string) string {
	var lines []string

	for line := range strings.Lines(text) {
		normalized := strings.Join(strings.Fields(line), " ")
		if normalized == "" {
			continue
		}

		lines = append(lines, normalized)
	}

	return strings.Join(lines, "\n\n")
}
