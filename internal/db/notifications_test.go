//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/models"
	"github.com/strhzy/classroom-course/internal/testutil/testdb"
)

func TestNotificationQueue(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	teacherID, err := db.CreateUser(ctx, h.DB, models.User{Name: "Преподаватель", Role: models.Teacher, IsActive: true})
	if err != nil {
		t.Fatal(err)
	}
	studentID, err := db.CreateUser(ctx, h.DB, models.User{Name: "Ученик", Role: models.Student, IsActive: true})
	if err != nil {
		t.Fatal(err)
	}
	courseID, err := db.CreateCourse(ctx, h.DB, models.Course{Title: "Курс", InstructorID: teacherID})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := db.CreateNotification(ctx, h.DB, models.Notification{
			CourseID:    courseID,
			RecipientID: studentID,
			Kind:        models.NotifyGeneral,
			Title:       "Объявление",
		}); err != nil {
			t.Fatal(err)
		}
	}

	pending, err := db.ListUnsentNotifications(ctx, h.DB, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 3 {
		t.Fatalf("в очереди %d, ожидали 3", len(pending))
	}

	if err := db.MarkNotificationSent(ctx, h.DB, pending[0].ID, time.Now().UTC()); err != nil {
		t.Fatal(err)
	}
	pending, err = db.ListUnsentNotifications(ctx, h.DB, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("после отметки в очереди %d, ожидали 2", len(pending))
	}

	// повторная отметка не перетирает sent_at
	first := pending[0].ID
	if err := db.MarkNotificationSent(ctx, h.DB, first, time.Now().UTC()); err != nil {
		t.Fatal(err)
	}
	if err := db.MarkNotificationSent(ctx, h.DB, first, time.Now().UTC().Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
}

func TestEnsureSuperuser(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	if err := db.EnsureSuperuser(ctx, h.DB, 777, "admin-777"); err != nil {
		t.Fatal(err)
	}
	// идемпотентно
	if err := db.EnsureSuperuser(ctx, h.DB, 777, "admin-777"); err != nil {
		t.Fatal(err)
	}
	u, err := db.GetUserByTelegramID(ctx, h.DB, 777)
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || !u.IsSuperuser {
		t.Fatalf("суперпользователь: %+v", u)
	}
}
