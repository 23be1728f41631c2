package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/strhzy/classroom-course/internal/models"
)

// Notifier доставляет уведомление адресату. Ядро доставкой не
// занимается: оно пишет строки в notifications, фоновый диспетчер
// (internal/jobs) прогоняет их через Notifier.
type Notifier interface {
	Send(ctx context.Context, recipient *models.User, n models.Notification) error
}

// LogNotifier — доставка в лог; дефолт для dev и для адресатов без
// привязанного Telegram.
type LogNotifier struct {
	log *zap.SugaredLogger
}

func NewLogNotifier(log *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, recipient *models.User, msg models.Notification) error {
	n.log.Infow("notification",
		"recipient", recipient.ID,
		"kind", string(msg.Kind),
		"title", msg.Title,
	)
	return nil
}
