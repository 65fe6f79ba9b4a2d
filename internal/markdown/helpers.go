// Package markdown builds Telegram MarkdownV2 text.
package markdown

import "strings"

// Taken from https://core.telegram.org/bots/api#markdownv2-style.
const (
	mdV2SpecialChars    = `\._[](){}#|!+-=*~>` + "`"
	mdV2LinkURLSpecials = `\)`
)

//nolint:gochecknoglobals // Lookup tables meant to be immutable.
var (
	textLookup    = lookup(mdV2SpecialChars)
	linkURLLookup = lookup(mdV2LinkURLSpecials)
)

// EscapeV2 escapes text outside of entities.
func EscapeV2(input string) string {
	return escape(input, &textLookup)
}

// Link renders an inline link. Inside the URL part only ')' and '\' have to
// be escaped.
func Link(title string, url string) string {
	return "[" + EscapeV2(title) + "](" + escape(url, &linkURLLookup) + ")"
}

func Bold(text string) string {
	return "*" + EscapeV2(text) + "*"
}

func escape(input string, table *[256]bool) string {
	charsToEscape := 0

	for i := range len(input) {
		if table[input[i]] {
			charsToEscape++
		}
	}
	if charsToEscape == 0 {
		return input
	}

	var b strings.Builder
	b.Grow(len(input) + charsToEscape)

	for i := range len(input) {
		c := input[i]
		if table[c] {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}

	return b.String()
}

func lookup(chars string) [256]bool {
	var m [256]bool
	for _, c := range []byte(chars) {
		m[c] = true
	}
	return m
}
