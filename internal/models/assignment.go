package models

import "time"

type AssignmentStatus string

const (
	AssignmentDraft     AssignmentStatus = "draft"
	AssignmentPublished AssignmentStatus = "published"
	AssignmentClosed    AssignmentStatus = "closed"
)

type Assignment struct {
	ID                   int64
	CourseID             int64
	Title                string
	Description          string
	Status               AssignmentStatus
	DueDate              *time.Time
	AllowLateSubmissions bool
	MaxPoints            int
	PassingScore         int
	IsGroupAssignment    bool
	GroupSizeMin         int
	GroupSizeMax         int
	CreatedAt            time.Time
	PublishedAt          *time.Time
}

func (a *Assignment) IsOverdue(now time.Time) bool {
	if a.DueDate == nil {
		return false
	}
	return now.After(*a.DueDate)
}

// CanSubmit — задание принимает решения: опубликовано и либо срок не
// вышел, либо разрешена поздняя сдача.
func (a *Assignment) CanSubmit(now time.Time) bool {
	if a.Status != AssignmentPublished {
		return false
	}
	if a.IsOverdue(now) && !a.AllowLateSubmissions {
		return false
	}
	return true
}
