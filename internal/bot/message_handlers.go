package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"mvdan.cc/xurls/v2"

	"newsbrief/internal/markdown"
)

const noLinksText = "✖️ Send me a link to a news article and I will summarize it\\."

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	if message.Chat == nil {
		return errors.New("message has no chat")
	}

	chatID := message.Chat.ID

	return b.withSpinner(ctx, chatID, func() error {
		command, args := parseCommand(message.Text)

		switch command {
		case "":
			return b.handleText(ctx, chatID, message.Text)
		case "/start", "/help":
			return b.sendMessage(ctx, chatID, welcomeText, nil)
		case "/feed":
			return b.handleFeedCommand(ctx, chatID, args)
		default:
			return b.sendMessage(ctx, chatID, unknownCommandText, b.helpKeyboard)
		}
	})
}

// handleText summarizes every article link found in the text, up to the
// configured limit.
func (b *Bot) handleText(ctx context.Context, chatID int64, text string) error {
	urls, err := extractURLs(text, b.maxURLs)
	if err != nil {
		return fmt.Errorf("extract URLs: %w", err)
	}

	if len(urls) == 0 {
		return b.sendMessage(ctx, chatID, noLinksText, b.helpKeyboard)
	}

	var errs []error

	for _, u := range urls {
		brief, summarizeErr := b.service.SummarizeURL(ctx, u, 0)
		if summarizeErr != nil {
			b.log.WarnContext(ctx, "Failed to summarize article",
				"error", summarizeErr,
				"chatID", chatID,
				"url", u)

			if err = b.sendMessage(ctx, chatID, failureText(summarizeErr, u), nil); err != nil {
				errs = append(errs, fmt.Errorf("send message: %w", err))
			}

			continue
		}

		for _, message := range formatBrief(brief) {
			if err = b.sendMessage(ctx, chatID, message, getOpenKeyboard(brief.URL)); err != nil {
				errs = append(errs, fmt.Errorf("send message: %w", err))
			}
		}
	}

	return errors.Join(errs...)
}

// parseCommand splits "/cmd@bot args" into "/cmd" and "args". Text that is
// not a command yields an empty command.
func parseCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}

	command, args, _ := strings.Cut(text, " ")
	command, _, _ = strings.Cut(command, "@")

	return strings.ToLower(command), strings.TrimSpace(args)
}

func extractURLs(text string, limit int) ([]string, error) {
	urlRe, err := xurls.StrictMatchingScheme(`https?://`)
	if err != nil {
		return nil, fmt.Errorf("create regexp: %w", err)
	}

	matches := urlRe.FindAllString(text, -1)

	urls := make([]string, 0, min(len(matches), limit))
	seen := make(map[string]struct{}, len(matches))

	for _, m := range matches {
		if len(urls) == limit {
			break
		}

		u := strings.TrimSpace(m)
		if _, ok := seen[u]; ok {
			continue
		}

		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	return urls, nil
}

func failureText(err error, url string) string {
	return fmt.Sprintf("❌ %s\n\n%s", markdown.EscapeV2(failureReason(err)), markdown.Link(url, url))
}
