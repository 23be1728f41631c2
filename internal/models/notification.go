package models

import "time"

type NotificationKind string

const (
	NotifyGrade      NotificationKind = "grade"
	NotifyEnrollment NotificationKind = "enrollment"
	NotifyReview     NotificationKind = "review"
	NotifyGeneral    NotificationKind = "general"
)

// Notification — запись о событии для пользователя. Доставкой занимается
// фоновый диспетчер (internal/jobs), ядро только пишет строки.
type Notification struct {
	ID          int64
	CourseID    int64
	RecipientID int64
	Kind        NotificationKind
	Title       string
	Message     string
	CreatedAt   time.Time
	SentAt      *time.Time
}
