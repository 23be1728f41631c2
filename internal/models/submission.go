package models

import "time"

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
	SubmissionReturned  SubmissionStatus = "returned"
)

// Submission — решение задания. На пару (assignment, student) одна
// запись; повторная сдача возможна только из статуса returned и
// перезаписывает содержимое той же записи.
type Submission struct {
	ID           int64
	AssignmentID int64
	StudentID    int64
	TextResponse string
	FileRef      *string
	Status       SubmissionStatus
	Score        *int
	Feedback     string
	GradedBy     *int64
	GradedAt     *time.Time
	SubmittedAt  time.Time
	// IsLate фиксируется в момент сдачи и не пересчитывается при
	// последующем изменении срока задания.
	IsLate bool
}

// LateAt — просрочена ли сдача в момент submittedAt относительно срока.
func LateAt(submittedAt time.Time, dueDate *time.Time) bool {
	if dueDate == nil {
		return false
	}
	return submittedAt.After(*dueDate)
}

// LetterGrade — буквенная оценка по стобалльной шкале.
func LetterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
