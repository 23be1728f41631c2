package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/strhzy/classroom-course/internal/models"
)

func CreateNotification(ctx context.Context, database *sql.DB, n models.Notification) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO notifications (course_id, recipient_id, kind, title, message)
		VALUES ($1, $2, $3, $4, $5)
	`, n.CourseID, n.RecipientID, string(n.Kind), n.Title, n.Message)
	return err
}

// ListUnsentNotifications — кандидаты на доставку, старые вперёд.
func ListUnsentNotifications(ctx context.Context, database *sql.DB, limit int) ([]models.Notification, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, course_id, recipient_id, kind, title, message, created_at, sent_at
		FROM notifications
		WHERE sent_at IS NULL
		ORDER BY created_at
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.CourseID, &n.RecipientID, &n.Kind, &n.Title, &n.Message, &n.CreatedAt, &n.SentAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func MarkNotificationSent(ctx context.Context, database *sql.DB, id int64, at time.Time) error {
	_, err := database.ExecContext(ctx, `
		UPDATE notifications SET sent_at = $2 WHERE id = $1 AND sent_at IS NULL
	`, id, at)
	return err
}
