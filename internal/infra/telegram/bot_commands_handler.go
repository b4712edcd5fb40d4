// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// StatusReporter exposes the last notification sent to the chat.
type StatusReporter interface {
	LastMessage() string
}

// RegisterBotCommands registers /start, /help and /status. Only the configured chat gets answers.
func RegisterBotCommands(
	b *telebot.Bot,
	chatID int64,
	reporter StatusReporter,
	baseLogger *logrus.Entry, // For contextual logging
) {
	commandsLogger := baseLogger.WithField("handler_group", "commands")
	restrict := onlyChat(chatID, commandsLogger)

	b.Handle("/start", func(c telebot.Context) error {
		commandsLogger.WithField("command", "/start").Info("Processing /start command")
		return c.Send("Привет! Я слежу за статусом проверки вашей последней домашней работы и напишу, когда он изменится.")
	}, restrict)

	b.Handle("/help", func(c telebot.Context) error {
		commandsLogger.WithField("command", "/help").Info("Processing /help command")
		var helpText strings.Builder
		helpText.WriteString("Доступные команды:\n\n")
		helpText.WriteString("/status - последнее отправленное уведомление о статусе работы.\n")
		helpText.WriteString("/help - показать это сообщение.")
		return c.Send(helpText.String())
	}, restrict)

	b.Handle("/status", func(c telebot.Context) error {
		logCtx := commandsLogger.WithField("command", "/status")
		logCtx.Info("Processing /status command")

		last := reporter.LastMessage()
		if last == "" {
			logCtx.Debug("No notifications sent yet")
			return c.Send("Обновлений статуса пока не было.")
		}
		return c.Send(last)
	}, restrict)
}

// onlyChat rejects updates coming from any chat other than chatID.
func onlyChat(chatID int64, logger *logrus.Entry) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if c.Chat() != nil && c.Chat().ID == chatID {
				return next(c)
			}
			fields := logrus.Fields{"text": c.Text()}
			if c.Chat() != nil {
				fields["chat_id"] = c.Chat().ID
			}
			if c.Sender() != nil {
				fields["sender_id"] = c.Sender().ID
			}
			logger.WithFields(fields).Warn("Unauthorized access attempt")
			return c.Send("Этот бот работает только для своего владельца.")
		}
	}
}
