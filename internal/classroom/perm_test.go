//go:build testutil
// +build testutil

package classroom_test

import (
	"errors"
	"testing"
	"time"

	"github.com/strhzy/classroom-course/internal/classroom"
	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/models"
)

func TestCourseAccess(t *testing.T) {
	ctx, database := startDB(t)

	teacher := mustSeedUser(t, ctx, database, "Преподаватель", models.Teacher, false)
	admin := mustSeedUser(t, ctx, database, "Админ", models.Admin, true)
	assistant := mustSeedUser(t, ctx, database, "Ассистент", models.Teacher, false)
	enrolled := mustSeedUser(t, ctx, database, "Зачисленный", models.Student, false)
	outsider := mustSeedUser(t, ctx, database, "Посторонний", models.Student, false)

	course := mustSeedCourse(t, ctx, database, teacher, models.Course{Title: "Закрытый курс"})
	if err := classroom.AddAssistant(ctx, database, teacher, course.ID, assistant); err != nil {
		t.Fatal(err)
	}
	if err := classroom.EnrollStudent(ctx, database, teacher, course.ID, enrolled); err != nil {
		t.Fatal(err)
	}

	for _, id := range []int64{teacher, admin, assistant, enrolled} {
		if _, err := classroom.GetCourse(ctx, database, id, course.ID); err != nil {
			t.Fatalf("доступ пользователя %d: %v", id, err)
		}
	}

	if ok, err := classroom.IsSuperuser(ctx, database, admin); err != nil || !ok {
		t.Fatalf("IsSuperuser(admin) = %v (%v)", ok, err)
	}
	if ok, err := classroom.IsStaffLike(ctx, database, teacher); err != nil || ok {
		t.Fatalf("IsStaffLike(teacher) = %v (%v)", ok, err)
	}
	if _, err := classroom.RoleOf(ctx, database, 999999); !errors.Is(err, classroom.ErrNotFound) {
		t.Fatalf("роль несуществующего: %v", err)
	}

	// роль меняет только staff или суперпользователь
	if err := classroom.SetUserRole(ctx, database, teacher, outsider, models.Teacher); !errors.Is(err, classroom.ErrPermissionDenied) {
		t.Fatalf("смена роли преподавателем: %v", err)
	}
	if err := classroom.SetUserRole(ctx, database, admin, outsider, models.Teacher); err != nil {
		t.Fatal(err)
	}
	if got, err := classroom.RoleOf(ctx, database, outsider); err != nil || got != models.Teacher {
		t.Fatalf("роль после смены: %v (%v)", got, err)
	}
	if err := classroom.SetUserRole(ctx, database, admin, outsider, models.Role("principal")); err == nil {
		t.Fatal("недопустимая роль должна отклоняться")
	}
	if _, err := classroom.GetCourse(ctx, database, outsider, course.ID); !errors.Is(err, classroom.ErrPermissionDenied) {
		t.Fatalf("доступ постороннего к закрытому: %v", err)
	}

	// публичный активный курс виден всем
	course.Status = models.CourseActive
	course.IsPublic = true
	if err := classroom.UpdateCourse(ctx, database, teacher, *course); err != nil {
		t.Fatal(err)
	}
	if _, err := classroom.GetCourse(ctx, database, outsider, course.ID); err != nil {
		t.Fatalf("доступ постороннего к публичному активному: %v", err)
	}

	// публичный черновик всё ещё закрыт
	course.Status = models.CourseDraft
	if err := classroom.UpdateCourse(ctx, database, teacher, *course); err != nil {
		t.Fatal(err)
	}
	if _, err := classroom.GetCourse(ctx, database, outsider, course.ID); !errors.Is(err, classroom.ErrPermissionDenied) {
		t.Fatalf("доступ постороннего к черновику: %v", err)
	}
}

func TestCourseEdit_Permissions(t *testing.T) {
	ctx, database := startDB(t)

	teacher := mustSeedUser(t, ctx, database, "Преподаватель", models.Teacher, false)
	other := mustSeedUser(t, ctx, database, "Другой преподаватель", models.Teacher, false)
	staff := mustSeedUser(t, ctx, database, "Завуч", models.Staff, false)
	student := mustSeedUser(t, ctx, database, "Ученик", models.Student, false)

	course := mustSeedCourse(t, ctx, database, teacher, models.Course{Title: "Биология"})

	// создавать курсы ученик не может
	if _, err := classroom.CreateCourse(ctx, database, student, models.Course{Title: "свой курс"}); !errors.Is(err, classroom.ErrPermissionDenied) {
		t.Fatalf("создание курса учеником: %v", err)
	}

	course.Description = "обновлено"
	if err := classroom.UpdateCourse(ctx, database, other, *course); !errors.Is(err, classroom.ErrPermissionDenied) {
		t.Fatalf("правка чужим преподавателем: %v", err)
	}
	if err := classroom.UpdateCourse(ctx, database, staff, *course); err != nil {
		t.Fatalf("правка staff: %v", err)
	}
	if err := classroom.UpdateCourse(ctx, database, teacher, *course); err != nil {
		t.Fatal(err)
	}

	// владелец неизменяем
	hijacked := *course
	hijacked.InstructorID = other
	if err := classroom.UpdateCourse(ctx, database, teacher, hijacked); err != nil {
		t.Fatal(err)
	}
	got, err := db.GetCourseByID(ctx, database, course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.InstructorID != teacher {
		t.Fatalf("владелец сменился: %d", got.InstructorID)
	}

	if err := classroom.DeleteCourse(ctx, database, student, course.ID); !errors.Is(err, classroom.ErrPermissionDenied) {
		t.Fatalf("удаление учеником: %v", err)
	}
	if err := classroom.DeleteCourse(ctx, database, teacher, course.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := classroom.GetCourse(ctx, database, teacher, course.ID); !errors.Is(err, classroom.ErrNotFound) {
		t.Fatalf("курс после удаления: %v", err)
	}
}

func TestCourse_LazyCompletion(t *testing.T) {
	ctx, database := startDB(t)

	teacher := mustSeedUser(t, ctx, database, "Преподаватель", models.Teacher, false)
	start := time.Now().UTC().AddDate(0, -2, 0)
	end := time.Now().UTC().AddDate(0, -1, 0)

	course := mustSeedCourse(t, ctx, database, teacher, models.Course{
		Title: "Прошедший", Status: models.CourseActive, StartDate: &start, EndDate: &end,
	})
	// чтение само переводит активный курс с истёкшей датой в completed
	if course.Status != models.CourseCompleted {
		t.Fatalf("статус: %v", course.Status)
	}
	got, err := db.GetCourseByID(ctx, database, course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.CourseCompleted {
		t.Fatalf("статус в БД: %v", got.Status)
	}

	// архив по дате не трогается
	archived := mustSeedCourse(t, ctx, database, teacher, models.Course{
		Title: "Архив", Status: models.CourseArchived, EndDate: &end,
	})
	if archived.Status != models.CourseArchived {
		t.Fatalf("статус архива: %v", archived.Status)
	}
}
