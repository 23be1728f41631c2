package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/strhzy/classroom-course/internal/models"
)

const courseCols = `id, title, description, code, instructor_id, status, is_public, max_students, start_date, end_date, created_at, updated_at`

func scanCourse(row interface{ Scan(...any) error }) (*models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Code, &c.InstructorID, &c.Status,
		&c.IsPublic, &c.MaxStudents, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func CreateCourse(ctx context.Context, database *sql.DB, c models.Course) (int64, error) {
	if c.Code == "" {
		c.Code = models.NewCourseCode()
	}
	if c.Status == "" {
		c.Status = models.CourseDraft
	}
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO courses (title, description, code, instructor_id, status, is_public, max_students, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, c.Title, c.Description, c.Code, c.InstructorID, string(c.Status), c.IsPublic,
		c.MaxStudents, c.StartDate, c.EndDate).Scan(&id)
	return id, err
}

// GetCourseByID читает курс и лениво завершает активный курс с истёкшей
// датой окончания. Обратного перехода нет.
func GetCourseByID(ctx context.Context, database *sql.DB, id int64) (*models.Course, error) {
	row := database.QueryRowContext(ctx, `SELECT `+courseCols+` FROM courses WHERE id = $1`, id)
	c, err := scanCourse(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if c.CompletedByDate(time.Now().UTC()) {
		c.Status = models.CourseCompleted
		if _, err := database.ExecContext(ctx, `
			UPDATE courses SET status = $2, updated_at = NOW() WHERE id = $1 AND status = 'active'
		`, c.ID, string(models.CourseCompleted)); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func UpdateCourse(ctx context.Context, database *sql.DB, c models.Course) error {
	if c.CompletedByDate(time.Now().UTC()) {
		c.Status = models.CourseCompleted
	}
	_, err := database.ExecContext(ctx, `
		UPDATE courses
		SET title = $2, description = $3, status = $4, is_public = $5,
		    max_students = $6, start_date = $7, end_date = $8, updated_at = NOW()
		WHERE id = $1
	`, c.ID, c.Title, c.Description, string(c.Status), c.IsPublic, c.MaxStudents, c.StartDate, c.EndDate)
	return err
}

func DeleteCourse(ctx context.Context, database *sql.DB, id int64) error {
	_, err := database.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return err
}

func AddAssistant(ctx context.Context, database *sql.DB, courseID, userID int64) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO course_assistants (course_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, courseID, userID)
	return err
}

func IsAssistant(ctx context.Context, database *sql.DB, courseID, userID int64) (bool, error) {
	var ok bool
	err := database.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_assistants WHERE course_id = $1 AND user_id = $2)
	`, courseID, userID).Scan(&ok)
	return ok, err
}

func IsDirectStudent(ctx context.Context, database *sql.DB, courseID, userID int64) (bool, error) {
	var ok bool
	err := database.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_students WHERE course_id = $1 AND user_id = $2)
	`, courseID, userID).Scan(&ok)
	return ok, err
}

// InsertCourseStudent — прямое зачисление; повтор молча игнорируется,
// возвращается факт вставки.
func InsertCourseStudent(ctx context.Context, database *sql.DB, courseID, userID int64) (bool, error) {
	res, err := database.ExecContext(ctx, `
		INSERT INTO course_students (course_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, courseID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func DeleteCourseStudent(ctx context.Context, database *sql.DB, courseID, userID int64) (bool, error) {
	res, err := database.ExecContext(ctx, `
		DELETE FROM course_students WHERE course_id = $1 AND user_id = $2
	`, courseID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func InsertCourseGroup(ctx context.Context, database *sql.DB, courseID, groupID int64) (bool, error) {
	res, err := database.ExecContext(ctx, `
		INSERT INTO course_groups (course_id, group_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, courseID, groupID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteCourseGroup отвязывает группу. Материализованные ранее прямые
// зачисления не трогаем: отвязка группы не отнимает личный доступ.
func DeleteCourseGroup(ctx context.Context, database *sql.DB, courseID, groupID int64) (bool, error) {
	res, err := database.ExecContext(ctx, `
		DELETE FROM course_groups WHERE course_id = $1 AND group_id = $2
	`, courseID, groupID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const effectiveRosterWhere = `
	u.id IN (
		SELECT user_id FROM course_students WHERE course_id = $1
		UNION
		SELECT m.id FROM users m
		JOIN course_groups cg ON cg.group_id = m.group_id
		WHERE cg.course_id = $1
	)`

// EffectiveRoster — объединение прямых учеников и состава всех
// зачисленных групп; дубли схлопываются через UNION.
func EffectiveRoster(ctx context.Context, database *sql.DB, courseID int64) ([]models.User, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT `+userCols+` FROM users u WHERE`+effectiveRosterWhere+` ORDER BY u.name, u.id
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func CountEffectiveRoster(ctx context.Context, database *sql.DB, courseID int64) (int, error) {
	var n int
	err := database.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users u WHERE`+effectiveRosterWhere, courseID).Scan(&n)
	return n, err
}

func InEffectiveRoster(ctx context.Context, database *sql.DB, courseID, userID int64) (bool, error) {
	var ok bool
	err := database.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM course_students WHERE course_id = $1 AND user_id = $2
			UNION
			SELECT 1 FROM users m
			JOIN course_groups cg ON cg.group_id = m.group_id
			WHERE cg.course_id = $1 AND m.id = $2
		)
	`, courseID, userID).Scan(&ok)
	return ok, err
}
