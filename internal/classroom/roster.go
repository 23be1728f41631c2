package classroom

import (
	"context"
	"database/sql"
	"errors"

	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/metrics"
	"github.com/strhzy/classroom-course/internal/models"
)

// Состав курса: прямые зачисления и зачисленные группы — независимые
// дорожки. Действующий состав — их объединение.

func EffectiveRoster(ctx context.Context, database *sql.DB, courseID int64) ([]models.User, error) {
	return db.EffectiveRoster(ctx, database, courseID)
}

// AddStudent — прямое зачисление. Вместимость проверяется по
// действующему составу и только в момент добавления; задним числом при
// росте групп она не пересматривается.
func AddStudent(ctx context.Context, database *sql.DB, course *models.Course, studentID int64) error {
	if course.MaxStudents != nil {
		n, err := db.CountEffectiveRoster(ctx, database, course.ID)
		if err != nil {
			return err
		}
		if n >= *course.MaxStudents {
			return ErrCapacityExceeded
		}
	}
	inserted, err := db.InsertCourseStudent(ctx, database, course.ID, studentID)
	if err != nil {
		return err
	}
	if !inserted {
		return ErrAlreadyEnrolled
	}
	metrics.Enrollments.Inc()
	return nil
}

// RemoveStudent снимает только прямую связь; членство через группу не
// проверяется и не затрагивается.
func RemoveStudent(ctx context.Context, database *sql.DB, course *models.Course, studentID int64) error {
	removed, err := db.DeleteCourseStudent(ctx, database, course.ID, studentID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotEnrolled
	}
	return nil
}

// AddGroup привязывает группу и разово материализует её текущий состав
// в прямые зачисления. Последующие изменения состава группы назад не
// разносятся. Возвращает число новых прямых зачислений; упёршись в
// вместимость посреди цикла, отдаёт частичный счёт без отката.
func AddGroup(ctx context.Context, database *sql.DB, course *models.Course, groupID int64) (int, error) {
	linked, err := db.InsertCourseGroup(ctx, database, course.ID, groupID)
	if err != nil {
		return 0, err
	}
	if !linked {
		return 0, ErrAlreadyEnrolled
	}

	members, err := db.ListGroupMembers(ctx, database, groupID)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, m := range members {
		err := AddStudent(ctx, database, course, m.ID)
		switch {
		case err == nil:
			added++
		case errors.Is(err, ErrAlreadyEnrolled):
			// уже записан напрямую
		default:
			return added, err
		}
	}
	return added, nil
}

// RemoveGroup отвязывает группу. Материализованные прямые зачисления
// остаются: отвязка группы не лишает личного доступа.
func RemoveGroup(ctx context.Context, database *sql.DB, course *models.Course, groupID int64) error {
	removed, err := db.DeleteCourseGroup(ctx, database, course.ID, groupID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotEnrolled
	}
	return nil
}
