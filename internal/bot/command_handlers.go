package bot

import (
	"context"
	"errors"
	"fmt"
)

const welcomeText = `🤖 *Welcome to News Brief\!*

I turn news articles into short extractive summaries\. I can help you:

– Summarize an article: just send me its link \(up to 3 links per message\)
– Summarize the latest items of an RSS / Atom / JSON feed with /feed \<feed URL\>
– Show this message again with /help`

const feedUsageText = "✖️ Usage: /feed \\<feed URL\\>"

const unknownCommandText = "✖️ Unknown command\\."

func (b *Bot) handleFeedCommand(ctx context.Context, chatID int64, feedURL string) error {
	if feedURL == "" {
		return b.sendMessage(ctx, chatID, feedUsageText, b.helpKeyboard)
	}

	fb, err := b.service.SummarizeFeed(ctx, feedURL, 0, 0)
	if err != nil {
		b.log.WarnContext(ctx, "Failed to summarize feed",
			"error", err,
			"chatID", chatID,
			"feedURL", feedURL)

		return b.sendMessage(ctx, chatID, failureText(err, feedURL), nil)
	}

	if len(fb.Items) == 0 {
		return b.sendMessage(ctx, chatID, "✖️ Feed has no items\\.", nil)
	}

	var errs []error

	for _, message := range formatFeedBrief(fb) {
		if err = b.sendMessage(ctx, chatID, message, nil); err != nil {
			errs = append(errs, fmt.Errorf("send message: %w", err))
		}
	}

	return errors.Join(errs...)
}
