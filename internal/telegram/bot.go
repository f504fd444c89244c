package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Bot sends streak notifications while the monitor runs.
type Bot struct {
	api      *tgbotapi.BotAPI
	chatID   int64
	disabled bool
}

// NewBot creates a Telegram bot instance. If token is empty, returns a
// no-op bot that logs messages instead of sending.
func NewBot(token, chatID string) (*Bot, error) {
	if token == "" {
		logrus.Info("telegram: no token provided, running in disabled mode (logging only)")
		return &Bot{disabled: true}, nil
	}

	parsedChatID, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID %q: %w", chatID, err)
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	logrus.WithField("username", api.Self.UserName).Info("telegram: authorized")

	return &Bot{
		api:    api,
		chatID: parsedChatID,
	}, nil
}

// SendMessage sends a plain text message.
func (b *Bot) SendMessage(text string) error {
	return b.send(text, false)
}

// SendAlert sends a formatted alert with a bold title.
func (b *Bot) SendAlert(title, message string) error {
	formatted := fmt.Sprintf("*%s*\n\n%s", escapeMarkdown(title), message)
	return b.send(formatted, true)
}

// NotifyStarted announces that the monitor is up.
func (b *Bot) NotifyStarted() error {
	return b.SendAlert("Halftime Watch Started", "Monitoring NBA halftime scoring")
}

// NotifyStopped announces a clean shutdown.
func (b *Bot) NotifyStopped() error {
	return b.SendAlert("Halftime Watch Stopped", "Monitor has been shut down")
}

// NotifyStreak fires when both teams in a game run hot or cold in the
// same half. The line is the already-formatted report row.
func (b *Bot) NotifyStreak(line string) error {
	return b.SendAlert("Scoring Streak", fmt.Sprintf("`%s`", line))
}

// send handles the actual message sending with graceful error handling.
func (b *Bot) send(text string, useMarkdown bool) error {
	if b.disabled {
		logrus.Debugf("telegram (disabled): %s", text)
		return nil
	}

	msg := tgbotapi.NewMessage(b.chatID, text)
	if useMarkdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}

	if _, err := b.api.Send(msg); err != nil {
		logrus.WithError(err).Warn("telegram: failed to send message")
		return fmt.Errorf("telegram send failed: %w", err)
	}

	return nil
}

var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// escapeMarkdown escapes special Markdown characters in text.
func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}
