package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/strhzy/classroom-course/internal/models"
	"github.com/strhzy/classroom-course/internal/observability"
)

// TelegramNotifier шлёт уведомления в личку, если у профиля привязан
// telegram_id; иначе молча пропускает.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{bot: bot}, nil
}

func (n *TelegramNotifier) Send(_ context.Context, recipient *models.User, msg models.Notification) error {
	if recipient.TelegramID == 0 {
		return nil
	}
	text := msg.Title
	if msg.Message != "" {
		text = fmt.Sprintf("%s\n%s", msg.Title, msg.Message)
	}
	_, err := n.bot.Send(tgbotapi.NewMessage(recipient.TelegramID, text))
	if isSystemErr(err) {
		observability.CaptureErr(err)
	}
	return err
}

// Системными считаем 5xx, 429, timeout; телеграм-валидации в Sentry не шлём.
func isSystemErr(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	if strings.Contains(s, "429") || strings.Contains(s, "502") || strings.Contains(s, "503") || strings.Contains(s, "timeout") {
		return true
	}
	return false
}
