package models

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// EnrollmentRequest — заявка ученика на зачисление. На пару
// (course, student) существует не больше одной записи, независимо от
// статуса: повторная подача после отклонения не предусмотрена.
type EnrollmentRequest struct {
	ID         int64
	CourseID   int64
	StudentID  int64
	Status     RequestStatus
	Comment    *string
	ReviewedBy *int64
	ReviewedAt *time.Time
	CreatedAt  time.Time
}
