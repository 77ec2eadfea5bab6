package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier pushes due-item reminders to the learner's Telegram chat.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %v", err)
	}
	return &TelegramNotifier{
		api:    api,
		chatID: chatID,
	}, nil
}

// SendDueReminder sends a message with the current due-item count.
func (n *TelegramNotifier) SendDueReminder(count int) error {
	text := fmt.Sprintf("📚 You have %d words due for review", count)
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}

// LogNotifier is the fallback used when no Telegram token is configured.
type LogNotifier struct{}

// SendDueReminder logs the due-item count.
func (n *LogNotifier) SendDueReminder(count int) error {
	log.Printf("%d words due for review", count)
	return nil
}
