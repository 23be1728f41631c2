//go:build testutil
// +build testutil

package classroom_test

import (
	"errors"
	"testing"

	"github.com/strhzy/classroom-course/internal/classroom"
	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/models"
)

func TestDirectEnrollment_CapacityAndDuplicates(t *testing.T) {
	ctx, database := startDB(t)

	teacher := mustSeedUser(t, ctx, database, "Преподаватель", models.Teacher, false)
	st1 := mustSeedUser(t, ctx, database, "Ученик 1", models.Student, false)
	st2 := mustSeedUser(t, ctx, database, "Ученик 2", models.Student, false)
	st3 := mustSeedUser(t, ctx, database, "Ученик 3", models.Student, false)

	course := mustSeedCourse(t, ctx, database, teacher, models.Course{
		Title: "Алгоритмы", MaxStudents: ptrInt(2),
	})

	if err := classroom.EnrollStudent(ctx, database, teacher, course.ID, st1); err != nil {
		t.Fatal(err)
	}
	if err := classroom.EnrollStudent(ctx, database, teacher, course.ID, st1); !errors.Is(err, classroom.ErrAlreadyEnrolled) {
		t.Fatalf("повторное зачисление: %v", err)
	}
	if err := classroom.EnrollStudent(ctx, database, teacher, course.ID, st2); err != nil {
		t.Fatal(err)
	}
	if err := classroom.EnrollStudent(ctx, database, teacher, course.ID, st3); !errors.Is(err, classroom.ErrCapacityExceeded) {
		t.Fatalf("зачисление сверх вместимости: %v", err)
	}

	// отчисление освобождает место
	if err := classroom.UnenrollStudent(ctx, database, teacher, course.ID, st1); err != nil {
		t.Fatal(err)
	}
	if err := classroom.UnenrollStudent(ctx, database, teacher, course.ID, st1); !errors.Is(err, classroom.ErrNotEnrolled) {
		t.Fatalf("повторное отчисление: %v", err)
	}
	if err := classroom.EnrollStudent(ctx, database, teacher, course.ID, st3); err != nil {
		t.Fatal(err)
	}

	ids := rosterIDs(t, ctx, database, course.ID)
	if len(ids) != 2 || !ids[st2] || !ids[st3] {
		t.Fatalf("состав: %v", ids)
	}
}

func TestGroupEnrollment_Materialization(t *testing.T) {
	ctx, database := startDB(t)

	teacher := mustSeedUser(t, ctx, database, "Преподаватель", models.Teacher, false)
	g1 := mustSeedUser(t, ctx, database, "Групповой 1", models.Student, false)
	g2 := mustSeedUser(t, ctx, database, "Групповой 2", models.Student, false)
	g3 := mustSeedUser(t, ctx, database, "Опоздавший", models.Student, false)

	groupID, err := classroom.CreateGroup(ctx, database, teacher, "10А", "")
	if err != nil {
		t.Fatal(err)
	}
	if n, err := classroom.AddStudentsToGroup(ctx, database, teacher, groupID, []int64{g1, g2, teacher}); err != nil || n != 2 {
		t.Fatalf("добавлено в группу %d (%v), ожидали 2", n, err)
	}

	course := mustSeedCourse(t, ctx, database, teacher, models.Course{Title: "Физика"})

	added, err := classroom.EnrollGroup(ctx, database, teacher, course.ID, groupID)
	if err != nil {
		t.Fatal(err)
	}
	if added != 2 {
		t.Fatalf("материализовано %d, ожидали 2", added)
	}
	if _, err := classroom.EnrollGroup(ctx, database, teacher, course.ID, groupID); !errors.Is(err, classroom.ErrAlreadyEnrolled) {
		t.Fatalf("повторная привязка группы: %v", err)
	}

	// новый участник группы виден через групповую дорожку, но прямое
	// зачисление ему задним числом не создаётся
	if n, err := classroom.AddStudentsToGroup(ctx, database, teacher, groupID, []int64{g3}); err != nil || n != 1 {
		t.Fatalf("добавление опоздавшего: %d (%v)", n, err)
	}
	ids := rosterIDs(t, ctx, database, course.ID)
	if len(ids) != 3 || !ids[g3] {
		t.Fatalf("состав с группой: %v", ids)
	}
	if ok, err := db.IsDirectStudent(ctx, database, course.ID, g1); err != nil || !ok {
		t.Fatalf("материализация должна давать прямое зачисление: %v (%v)", ok, err)
	}
	if ok, err := db.IsDirectStudent(ctx, database, course.ID, g3); err != nil || ok {
		t.Fatalf("опоздавший не материализуется задним числом: %v (%v)", ok, err)
	}

	// отвязка группы не лишает материализованных личного доступа
	if err := classroom.UnenrollGroup(ctx, database, teacher, course.ID, groupID); err != nil {
		t.Fatal(err)
	}
	ids = rosterIDs(t, ctx, database, course.ID)
	if len(ids) != 2 || !ids[g1] || !ids[g2] || ids[g3] {
		t.Fatalf("состав после отвязки: %v", ids)
	}
	if err := classroom.UnenrollGroup(ctx, database, teacher, course.ID, groupID); !errors.Is(err, classroom.ErrNotEnrolled) {
		t.Fatalf("повторная отвязка: %v", err)
	}
}

func TestGroupEnrollment_CapacityStopsMaterialization(t *testing.T) {
	ctx, database := startDB(t)

	teacher := mustSeedUser(t, ctx, database, "Преподаватель", models.Teacher, false)
	g1 := mustSeedUser(t, ctx, database, "Групповой 1", models.Student, false)
	g2 := mustSeedUser(t, ctx, database, "Групповой 2", models.Student, false)

	groupID, err := classroom.CreateGroup(ctx, database, teacher, "11Б", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := classroom.AddStudentsToGroup(ctx, database, teacher, groupID, []int64{g1, g2}); err != nil {
		t.Fatal(err)
	}

	course := mustSeedCourse(t, ctx, database, teacher, models.Course{
		Title: "Химия", MaxStudents: ptrInt(1),
	})

	// после привязки оба уже в действующем составе через группу, так что
	// вместимость не пускает ни одного в прямые зачисления
	added, err := classroom.EnrollGroup(ctx, database, teacher, course.ID, groupID)
	if !errors.Is(err, classroom.ErrCapacityExceeded) {
		t.Fatalf("ожидали отказ по вместимости, получили %v", err)
	}
	if added != 0 {
		t.Fatalf("материализовано %d, ожидали 0", added)
	}
	if ids := rosterIDs(t, ctx, database, course.ID); len(ids) != 2 {
		t.Fatalf("групповая дорожка должна остаться: %v", ids)
	}
}

func TestGroups_DeleteKeepsStudents(t *testing.T) {
	ctx, database := startDB(t)

	staff := mustSeedUser(t, ctx, database, "Завуч", models.Staff, false)
	st := mustSeedUser(t, ctx, database, "Ученик", models.Student, false)

	groupID, err := classroom.CreateGroup(ctx, database, staff, "9В", "выпускной")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := classroom.AddStudentsToGroup(ctx, database, staff, groupID, []int64{st}); err != nil {
		t.Fatal(err)
	}

	// ученик с группой второй раз не берётся
	if n, err := classroom.AddStudentsToGroup(ctx, database, staff, groupID, []int64{st}); err != nil || n != 0 {
		t.Fatalf("повторное добавление: %d (%v)", n, err)
	}

	if err := classroom.UpdateGroup(ctx, database, staff, models.StudentGroup{
		ID: groupID, Name: "9В", Description: "последний звонок",
	}); err != nil {
		t.Fatal(err)
	}
	if err := classroom.UpdateGroup(ctx, database, st, models.StudentGroup{ID: groupID, Name: "9В"}); !errors.Is(err, classroom.ErrPermissionDenied) {
		t.Fatalf("правка группы учеником: %v", err)
	}

	if err := classroom.DeleteGroup(ctx, database, staff, groupID); err != nil {
		t.Fatal(err)
	}
	u, err := classroom.RoleOf(ctx, database, st)
	if err != nil {
		t.Fatalf("профиль ученика должен пережить удаление группы: %v", err)
	}
	if u != models.Student {
		t.Fatalf("роль: %v", u)
	}
}
