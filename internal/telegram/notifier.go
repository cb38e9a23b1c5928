// Package telegram delivers crisis alerts to the on-call staff chat through a
// Telegram bot.
package telegram

import (
	"fmt"

	"unicare/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier implements crisis.Notifier over the Telegram Bot API.
type Notifier struct {
	bot         *tgbotapi.BotAPI
	staffChatID int64
}

// NewNotifier authenticates the bot and returns a notifier bound to the staff
// chat.
func NewNotifier(token string, staffChatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to start telegram bot: %w", err)
	}
	return &Notifier{bot: bot, staffChatID: staffChatID}, nil
}

// NotifyAlert posts the alert to the staff chat. The student is referenced by
// ID only; no personal details leave the system.
func (n *Notifier) NotifyAlert(alert *models.CrisisAlert) error {
	text := fmt.Sprintf(
		"⚠️ Crisis alert (severity %d)\nStudent: %s\nSource: %s",
		alert.Severity, alert.StudentID, alert.Source,
	)
	if alert.RoomID != nil {
		text += "\nRoom: " + *alert.RoomID
	}
	msg := tgbotapi.NewMessage(n.staffChatID, text)
	_, err := n.bot.Send(msg)
	return err
}
