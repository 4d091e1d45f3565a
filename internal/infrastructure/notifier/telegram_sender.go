package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// TelegramSender отправляет HTML-сообщения в один чат.
type TelegramSender struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramSender(token string, chatID int64) (*TelegramSender, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return &TelegramSender{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (s *TelegramSender) Send(ctx context.Context, text string) error {
	msg := tu.Message(
		tu.ID(s.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := s.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}
