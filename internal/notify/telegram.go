package notify

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts alerts into a single chat.
type Telegram struct {
	bot    botSender
	chatID int64
}

// NewTelegram authenticates the bot token against the Bot API.
func NewTelegram(botToken string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Notify(ctx context.Context, msg Message) error {
	if t.chatID == 0 {
		log.Printf("[tg][skip] chatID empty")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	out := tgbotapi.NewMessage(t.chatID, msg.Subject+"\n\n"+msg.Body)
	out.DisableWebPagePreview = true
	if _, err := t.bot.Send(out); err != nil {
		log.Printf("[tg][send][err] chatID=%d: %v", t.chatID, err)
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}
