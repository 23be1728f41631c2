package models

import (
	"fmt"
	"math/rand"
	"time"
)

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CourseActive    CourseStatus = "active"
	CourseArchived  CourseStatus = "archived"
	CourseCompleted CourseStatus = "completed"
)

type Course struct {
	ID           int64
	Title        string
	Description  string
	Code         string
	InstructorID int64
	Status       CourseStatus
	IsPublic     bool
	MaxStudents  *int
	StartDate    *time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CompletedByDate — активный курс с истёкшей датой окончания считается
// завершённым. Переход выполняется лениво при чтении/сохранении и
// никогда не откатывается автоматически.
func (c *Course) CompletedByDate(now time.Time) bool {
	return c.Status == CourseActive && c.EndDate != nil && c.EndDate.Before(now)
}

// Progress — процент прохождения курса по датам, 0..100.
func (c *Course) Progress(now time.Time) int {
	if c.StartDate == nil || c.EndDate == nil {
		return 0
	}
	total := c.EndDate.Sub(*c.StartDate).Seconds()
	elapsed := now.Sub(*c.StartDate).Seconds()
	if elapsed <= 0 || total <= 0 {
		return 0
	}
	if elapsed >= total {
		return 100
	}
	return int(elapsed / total * 100)
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewCourseCode генерирует код вида COURSE-7F3K2A. Уникальность
// добивает constraint в БД.
func NewCourseCode() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return fmt.Sprintf("COURSE-%s", b)
}
