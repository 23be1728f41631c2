package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/strhzy/classroom-course/internal/models"
)

func TestCourse_CompletedByDate(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	c := models.Course{Status: models.CourseActive, EndDate: &past}
	if !c.CompletedByDate(now) {
		t.Fatal("активный курс с истёкшей датой должен считаться завершённым")
	}

	c.EndDate = &future
	if c.CompletedByDate(now) {
		t.Fatal("дата окончания впереди, завершения нет")
	}

	c.Status = models.CourseDraft
	c.EndDate = &past
	if c.CompletedByDate(now) {
		t.Fatal("черновик не завершается по дате")
	}

	c.Status = models.CourseActive
	c.EndDate = nil
	if c.CompletedByDate(now) {
		t.Fatal("без даты окончания завершения нет")
	}
}

func TestCourse_Progress(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)
	c := models.Course{StartDate: &start, EndDate: &end}

	if got := c.Progress(start.Add(-time.Hour)); got != 0 {
		t.Fatalf("до начала прогресс 0, получили %d", got)
	}
	if got := c.Progress(start.AddDate(0, 0, 5)); got != 50 {
		t.Fatalf("в середине прогресс 50, получили %d", got)
	}
	if got := c.Progress(end.Add(time.Hour)); got != 100 {
		t.Fatalf("после конца прогресс 100, получили %d", got)
	}

	empty := models.Course{}
	if got := empty.Progress(start); got != 0 {
		t.Fatalf("без дат прогресс 0, получили %d", got)
	}
}

func TestNewCourseCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := models.NewCourseCode()
		if !strings.HasPrefix(code, "COURSE-") {
			t.Fatalf("неожиданный формат кода: %q", code)
		}
		if len(code) != len("COURSE-")+6 {
			t.Fatalf("неожиданная длина кода: %q", code)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("коды не меняются")
	}
}
