package models

import "time"

// StudentGroup — именованная группа учеников. Принадлежность хранится
// обратной ссылкой в профиле ученика (users.group_id), не в группе:
// удаление группы обнуляет ссылку, но не трогает самих учеников.
type StudentGroup struct {
	ID          int64
	Name        string
	Description string
	CreatedBy   int64
	CreatedAt   time.Time
}
