package models

import "time"

// AssignmentFile — вспомогательный файл ученика к заданию. Само
// содержимое живёт во внешнем файловом сервисе, здесь только
// непрозрачная ссылка.
type AssignmentFile struct {
	ID           int64
	AssignmentID int64
	StudentID    int64
	FileRef      string
	Description  string
	CreatedAt    time.Time
}

type ReviewStatus string

const (
	ReviewPending       ReviewStatus = "pending"
	ReviewApproved      ReviewStatus = "approved"
	ReviewRejected      ReviewStatus = "rejected"
	ReviewNeedsRevision ReviewStatus = "needs_revision"
)

// FileReview — рецензия проверяющего на файл. На пару (file, reviewer)
// одна запись: повторная рецензия редактирует существующую.
type FileReview struct {
	ID         int64
	FileID     int64
	ReviewerID int64
	Status     ReviewStatus
	Feedback   string
	Points     *int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
