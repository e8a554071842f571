// Package telegram delivers staff alerts (new complaints, new contact
// messages) to the Labour Department's Telegram staff group.
package telegram

import (
	"context"
	"fmt"
	"labourdesk/backend/internal/localization"
	"labourdesk/backend/internal/notify"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// botSender is the part of *tgbotapi.BotAPI the alerter needs.
type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Alerter is the notify.Sender for notify.ChannelStaff.
type Alerter struct {
	bot       botSender
	chatID    int64
	localizer *localization.Localizer
}

var _ notify.Sender = (*Alerter)(nil)

// NewAlerter authorizes the bot token against the Telegram API.
func NewAlerter(token string, staffChatID int64, loc *localization.Localizer) (*Alerter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	bot.Debug = false
	return newAlerter(bot, staffChatID, loc), nil
}

func newAlerter(bot botSender, staffChatID int64, loc *localization.Localizer) *Alerter {
	return &Alerter{bot: bot, chatID: staffChatID, localizer: loc}
}

// Send renders job.Template from the "alert." catalog keys and posts it to the
// staff chat as plain text.
func (a *Alerter) Send(_ context.Context, job notify.Job) error {
	text := a.localizer.Render(localization.DefaultLanguage, "alert."+job.Template, job.Data)

	msg := tgbotapi.NewMessage(a.chatID, text)
	if _, err := a.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send to %d: %w", a.chatID, err)
	}
	return nil
}
