//go:build testutil
// +build testutil

package classroom_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/strhzy/classroom-course/internal/classroom"
	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/models"
	"github.com/strhzy/classroom-course/internal/testutil/testdb"
)

func startDB(t *testing.T) (context.Context, *sql.DB) {
	t.Helper()
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Close)
	return ctx, h.DB
}

func mustSeedUser(t *testing.T, ctx context.Context, database *sql.DB, name string, role models.Role, super bool) int64 {
	t.Helper()
	id, err := db.CreateUser(ctx, database, models.User{
		Name:        name,
		Role:        role,
		IsSuperuser: super,
		IsActive:    true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func mustSeedCourse(t *testing.T, ctx context.Context, database *sql.DB, teacherID int64, c models.Course) *models.Course {
	t.Helper()
	id, err := classroom.CreateCourse(ctx, database, teacherID, c)
	if err != nil {
		t.Fatal(err)
	}
	course, err := db.GetCourseByID(ctx, database, id)
	if err != nil {
		t.Fatal(err)
	}
	if course == nil {
		t.Fatalf("курс %d не найден после создания", id)
	}
	return course
}

func rosterIDs(t *testing.T, ctx context.Context, database *sql.DB, courseID int64) map[int64]bool {
	t.Helper()
	users, err := classroom.EffectiveRoster(ctx, database, courseID)
	if err != nil {
		t.Fatal(err)
	}
	out := make(map[int64]bool, len(users))
	for _, u := range users {
		out[u.ID] = true
	}
	return out
}

func ptrInt(n int) *int { return &n }
