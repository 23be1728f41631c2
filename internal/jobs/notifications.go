package jobs

import (
	"context"
	"database/sql"
	"time"

	"github.com/strhzy/classroom-course/internal/ctxutil"
	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/metrics"
	"github.com/strhzy/classroom-course/internal/notify"
	"github.com/strhzy/classroom-course/internal/observability"
)

// StartNotificationDispatcher раз в интервал выгребает недоставленные
// уведомления и прогоняет их через Notifier. Недоставленное остаётся в
// очереди до следующего прохода.
func StartNotificationDispatcher(r *Runner, database *sql.DB, n notify.Notifier, interval time.Duration) {
	r.Every(interval, "notifications", func(ctx context.Context) error {
		return dispatchPending(ctx, database, n)
	})
}

func dispatchPending(ctx context.Context, database *sql.DB, n notify.Notifier) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	pending, err := db.ListUnsentNotifications(ctx, database, 100)
	if err != nil {
		observability.CaptureErr(err)
		return err
	}
	for _, msg := range pending {
		recipient, err := db.GetUserByID(ctx, database, msg.RecipientID)
		if err != nil {
			observability.CaptureErr(err)
			continue
		}
		if recipient == nil {
			// адресат удалён — помечаем, чтобы не крутить вечно
			_ = db.MarkNotificationSent(ctx, database, msg.ID, time.Now().UTC())
			continue
		}
		if err := n.Send(ctx, recipient, msg); err != nil {
			metrics.NotifyErrors.Inc()
			continue
		}
		if err := db.MarkNotificationSent(ctx, database, msg.ID, time.Now().UTC()); err != nil {
			observability.CaptureErr(err)
		}
	}
	return nil
}
