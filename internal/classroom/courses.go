package classroom

import (
	"context"
	"database/sql"

	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/models"
)

func getCourse(ctx context.Context, database *sql.DB, id int64) (*models.Course, error) {
	c, err := db.GetCourseByID(ctx, database, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// CreateCourse — создать курс может преподаватель, staff или
// суперпользователь; владелец задаётся один раз и не меняется.
func CreateCourse(ctx context.Context, database *sql.DB, actorID int64, c models.Course) (int64, error) {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return 0, err
	}
	if !actor.IsTeacher() && !actor.IsStaffLike() {
		return 0, ErrPermissionDenied
	}
	c.InstructorID = actorID
	return db.CreateCourse(ctx, database, c)
}

// GetCourse возвращает курс, если у вызывающего есть к нему доступ.
func GetCourse(ctx context.Context, database *sql.DB, actorID, courseID int64) (*models.Course, error) {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return nil, err
	}
	course, err := getCourse(ctx, database, courseID)
	if err != nil {
		return nil, err
	}
	ok, err := CanAccessCourse(ctx, database, actor, course)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}
	return course, nil
}

func UpdateCourse(ctx context.Context, database *sql.DB, actorID int64, c models.Course) error {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return err
	}
	current, err := getCourse(ctx, database, c.ID)
	if err != nil {
		return err
	}
	if !CanEditCourse(actor, current) {
		return ErrPermissionDenied
	}
	// владелец неизменяем
	c.InstructorID = current.InstructorID
	return db.UpdateCourse(ctx, database, c)
}

func DeleteCourse(ctx context.Context, database *sql.DB, actorID, courseID int64) error {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return err
	}
	course, err := getCourse(ctx, database, courseID)
	if err != nil {
		return err
	}
	if !CanDeleteCourse(actor, course) {
		return ErrPermissionDenied
	}
	return db.DeleteCourse(ctx, database, courseID)
}

func AddAssistant(ctx context.Context, database *sql.DB, actorID, courseID, userID int64) error {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return err
	}
	course, err := getCourse(ctx, database, courseID)
	if err != nil {
		return err
	}
	if !CanEditCourse(actor, course) {
		return ErrPermissionDenied
	}
	if _, err := getUser(ctx, database, userID); err != nil {
		return err
	}
	return db.AddAssistant(ctx, database, courseID, userID)
}

// EnrollStudent — прямое зачисление от имени редактора курса.
func EnrollStudent(ctx context.Context, database *sql.DB, actorID, courseID, studentID int64) error {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return err
	}
	course, err := getCourse(ctx, database, courseID)
	if err != nil {
		return err
	}
	if !CanEditCourse(actor, course) {
		return ErrPermissionDenied
	}
	if _, err := getUser(ctx, database, studentID); err != nil {
		return err
	}
	return AddStudent(ctx, database, course, studentID)
}

func UnenrollStudent(ctx context.Context, database *sql.DB, actorID, courseID, studentID int64) error {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return err
	}
	course, err := getCourse(ctx, database, courseID)
	if err != nil {
		return err
	}
	if !CanEditCourse(actor, course) {
		return ErrPermissionDenied
	}
	return RemoveStudent(ctx, database, course, studentID)
}

// EnrollGroup — зачисление группы; возвращает число учеников, впервые
// попавших в прямой состав.
func EnrollGroup(ctx context.Context, database *sql.DB, actorID, courseID, groupID int64) (int, error) {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return 0, err
	}
	course, err := getCourse(ctx, database, courseID)
	if err != nil {
		return 0, err
	}
	if !CanEditCourse(actor, course) {
		return 0, ErrPermissionDenied
	}
	group, err := db.GetGroupByID(ctx, database, groupID)
	if err != nil {
		return 0, err
	}
	if group == nil {
		return 0, ErrNotFound
	}
	return AddGroup(ctx, database, course, groupID)
}

func UnenrollGroup(ctx context.Context, database *sql.DB, actorID, courseID, groupID int64) error {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return err
	}
	course, err := getCourse(ctx, database, courseID)
	if err != nil {
		return err
	}
	if !CanEditCourse(actor, course) {
		return ErrPermissionDenied
	}
	return RemoveGroup(ctx, database, course, groupID)
}
