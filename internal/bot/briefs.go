package bot

import (
	"errors"
	"strings"
	"unicode/utf8"

	"newsbrief/internal/domain"
	"newsbrief/internal/markdown"
)

const (
	telegramMessageMaxLength = 4096

	// Item summaries in a feed digest are cut so that one item always fits
	// into a single message next to the digest header.
	feedItemSummaryMaxLength = 1500
)

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return "URL is invalid."
	case errors.Is(err, domain.ErrFetch):
		return "Could not fetch article content."
	default:
		return "Could not summarize article."
	}
}

// formatBrief renders a summary as one or more MarkdownV2 messages. Long
// summaries are split on word boundaries.
func formatBrief(b domain.Brief) []string {
	title := strings.TrimSpace(b.Title)
	if title == "" {
		title = b.URL
	}

	header := "📰 " + markdown.Bold(title) + "\n\n"
	continueHeader := "📰 " + markdown.Bold(title+" (continue)") + "\n\n"

	var messages []string

	for i, chunk := range chunkWords(b.Summary, telegramMessageMaxLength-len(continueHeader)) {
		if i == 0 {
			messages = append(messages, header+chunk)
		} else {
			messages = append(messages, continueHeader+chunk)
		}
	}

	return messages
}

func formatFeedBrief(fb domain.FeedBrief) []string {
	title := strings.TrimSpace(fb.Title)
	if title == "" {
		title = fb.URL
	}

	header := "📰 " + markdown.Bold(title) + "\n\n"
	continueHeader := "📰 " + markdown.Bold(title+" (continue)") + "\n\n"

	var messages []string
	var currentMessage strings.Builder

	currentMessage.WriteString(header)
	itemsInMessage := 0

	for _, item := range fb.Items {
		block := formatFeedItem(item)

		if itemsInMessage > 0 && currentMessage.Len()+len(block) > telegramMessageMaxLength {
			messages = append(messages, strings.TrimRight(currentMessage.String(), "\n"))
			currentMessage.Reset()
			currentMessage.WriteString(continueHeader)
			itemsInMessage = 0
		}

		currentMessage.WriteString(block)
		itemsInMessage++
	}

	if itemsInMessage > 0 {
		messages = append(messages, strings.TrimRight(currentMessage.String(), "\n"))
	}

	return messages
}

func formatFeedItem(item domain.FeedItemBrief) string {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = item.URL
	}

	var b strings.Builder

	b.WriteString("📌 *")
	b.WriteString(markdown.Link(title, item.URL))
	b.WriteString("*\n")

	if item.Err != nil {
		b.WriteString("_")
		b.WriteString(markdown.EscapeV2(failureReason(item.Err)))
		b.WriteString("_")
	} else {
		b.WriteString(markdown.EscapeV2(truncate(item.Summary, feedItemSummaryMaxLength)))
	}

	b.WriteString("\n\n")

	return b.String()
}

// chunkWords escapes text and splits it into pieces of at most limit bytes.
func chunkWords(text string, limit int) []string {
	var chunks []string
	var current strings.Builder

	for word := range strings.FieldsSeq(text) {
		escaped := markdown.EscapeV2(word)

		for len(escaped) > limit {
			head := cutEscaped(escaped, limit)
			if head == "" {
				break
			}
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			chunks = append(chunks, head)
			escaped = escaped[len(head):]
		}

		switch {
		case current.Len() == 0:
		case current.Len()+1+len(escaped) > limit:
			chunks = append(chunks, current.String())
			current.Reset()
		default:
			current.WriteByte(' ')
		}

		current.WriteString(escaped)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// cutEscaped returns the longest prefix of s within limit bytes that ends
// neither inside a rune nor between a backslash and the escaped character.
func cutEscaped(s string, limit int) string {
	end := 0

	for end < len(s) {
		size := 1
		if s[end] == '\\' && end+1 < len(s) {
			size = 2
		} else {
			_, size = utf8.DecodeRuneInString(s[end:])
		}

		if end+size > limit {
			break
		}

		end += size
	}

	return s[:end]
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	if i := strings.LastIndexByte(text[:cut], ' '); i > 0 {
		cut = i
	}

	return strings.TrimSpace(text[:cut]) + "…"
}
