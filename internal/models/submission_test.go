package models_test

import (
	"testing"
	"time"

	"github.com/strhzy/classroom-course/internal/models"
)

func TestLateAt(t *testing.T) {
	due := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	if models.LateAt(due.Add(-time.Second), &due) {
		t.Fatal("сдача до срока не просрочена")
	}
	if models.LateAt(due, &due) {
		t.Fatal("сдача ровно в срок не просрочена")
	}
	if !models.LateAt(due.Add(time.Second), &due) {
		t.Fatal("сдача после срока просрочена")
	}
	if models.LateAt(due.Add(time.Hour), nil) {
		t.Fatal("без срока просрочки нет")
	}
}

func TestLetterGrade(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A"}, {90, "A"},
		{89.9, "B"}, {80, "B"},
		{79, "C"}, {70, "C"},
		{69, "D"}, {60, "D"},
		{59.9, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		if got := models.LetterGrade(tc.score); got != tc.want {
			t.Errorf("LetterGrade(%v) = %q, ожидали %q", tc.score, got, tc.want)
		}
	}
}
