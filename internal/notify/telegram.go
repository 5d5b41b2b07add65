package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/smartdetector/moderation/internal/models"
)

// TelegramNotifier mirrors alerts into a moderation channel. It is an
// optional secondary channel next to email and sends the plain-text body.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating telegram bot: %v", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID, logger: logger}, nil
}

func (n *TelegramNotifier) Notify(_ context.Context, msg models.AlertMessage) error {
	text := msg.Subject
	if msg.TextBody != "" {
		text = fmt.Sprintf("%s\n\n%s", msg.Subject, msg.TextBody)
	}
	if _, err := n.api.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		return fmt.Errorf("error sending telegram alert: %v", err)
	}
	n.logger.Info("telegram alert sent", zap.Int64("chat_id", n.chatID))
	return nil
}
