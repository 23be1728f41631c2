package classroom

import (
	"context"
	"database/sql"

	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/models"
)

// Разрешения считаются каждый раз от текущего состояния курса и
// состава, без кэшированных флагов. Порядок всюду один: суперпользователь,
// затем владелец, затем роль на курсе (преподаватель, ассистент), затем
// staff-роль.

// CanAccessCourse — суперпользователь, преподаватель, ассистент, участник
// действующего состава либо публичный активный курс.
func CanAccessCourse(ctx context.Context, database *sql.DB, user *models.User, course *models.Course) (bool, error) {
	if user.IsSuperuser {
		return true, nil
	}
	if user.ID == course.InstructorID {
		return true, nil
	}
	if ok, err := db.IsAssistant(ctx, database, course.ID, user.ID); err != nil || ok {
		return ok, err
	}
	if ok, err := db.InEffectiveRoster(ctx, database, course.ID, user.ID); err != nil || ok {
		return ok, err
	}
	return course.IsPublic && course.Status == models.CourseActive, nil
}

func CanEditCourse(user *models.User, course *models.Course) bool {
	return user.IsSuperuser || user.ID == course.InstructorID || user.Role == models.Staff
}

func CanDeleteCourse(user *models.User, course *models.Course) bool {
	return CanEditCourse(user, course)
}

// CanGradeAssignment — преподаватель курса, его ассистент, суперпользователь
// или staff-роль.
func CanGradeAssignment(ctx context.Context, database *sql.DB, user *models.User, course *models.Course) (bool, error) {
	if user.IsSuperuser || user.ID == course.InstructorID {
		return true, nil
	}
	if ok, err := db.IsAssistant(ctx, database, course.ID, user.ID); err != nil || ok {
		return ok, err
	}
	return user.Role == models.Staff, nil
}

// CanReviewEnrollmentRequest — тот же круг, что и право редактировать курс.
func CanReviewEnrollmentRequest(user *models.User, course *models.Course) bool {
	return CanEditCourse(user, course)
}

// CanManageGroups — создавать группы может преподаватель, staff или
// суперпользователь.
func CanManageGroups(user *models.User) bool {
	return user.IsTeacher() || user.IsStaffLike()
}

func CanEditGroup(user *models.User, group *models.StudentGroup) bool {
	return user.ID == group.CreatedBy || user.IsStaffLike()
}
