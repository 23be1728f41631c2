package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/strhzy/classroom-course/internal/models"
)

const requestCols = `id, course_id, student_id, status, comment, reviewed_by, reviewed_at, created_at`

func scanRequest(row interface{ Scan(...any) error }) (*models.EnrollmentRequest, error) {
	var r models.EnrollmentRequest
	err := row.Scan(&r.ID, &r.CourseID, &r.StudentID, &r.Status, &r.Comment, &r.ReviewedBy, &r.ReviewedAt, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateEnrollmentRequest — вторая заявка на пару (course, student)
// упирается в уникальный индекс независимо от статуса первой.
func CreateEnrollmentRequest(ctx context.Context, database *sql.DB, courseID, studentID int64) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO enrollment_requests (course_id, student_id)
		VALUES ($1, $2)
		RETURNING id
	`, courseID, studentID).Scan(&id)
	return id, err
}

func GetRequestByID(ctx context.Context, database *sql.DB, id int64) (*models.EnrollmentRequest, error) {
	row := database.QueryRowContext(ctx, `SELECT `+requestCols+` FROM enrollment_requests WHERE id = $1`, id)
	r, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

func ListPendingRequests(ctx context.Context, database *sql.DB, courseID int64) ([]models.EnrollmentRequest, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT `+requestCols+`
		FROM enrollment_requests
		WHERE course_id = $1 AND status = 'pending'
		ORDER BY created_at
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.EnrollmentRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// ApproveEnrollmentRequest — одобрение одной транзакцией: перевод заявки
// из pending и зачисление ученика в прямой состав. reviewed=false —
// заявка уже не pending; fits=false — упёрлись в вместимость, транзакция
// откатывается и заявка остаётся pending (можно вернуться, когда место
// освободится); added — появилось ли новое прямое зачисление.
func ApproveEnrollmentRequest(ctx context.Context, database *sql.DB, requestID, courseID, studentID, reviewerID int64, comment *string, maxStudents *int, at time.Time) (reviewed, fits, added bool, err error) {
	tx, err := database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return false, false, false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE enrollment_requests
		SET status = 'approved', reviewed_by = $2, reviewed_at = $3, comment = $4
		WHERE id = $1 AND status = 'pending'
	`, requestID, reviewerID, at, comment)
	if err != nil {
		return false, false, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, false, false, err
	}
	if n == 0 {
		return false, false, false, nil
	}

	// уже в составе (например, через группу) — место не нужно
	var inRoster bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM course_students WHERE course_id = $1 AND user_id = $2
			UNION
			SELECT 1 FROM users m
			JOIN course_groups cg ON cg.group_id = m.group_id
			WHERE cg.course_id = $1 AND m.id = $2
		)
	`, courseID, studentID).Scan(&inRoster)
	if err != nil {
		return false, false, false, err
	}
	if !inRoster && maxStudents != nil {
		var cnt int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM users u WHERE`+effectiveRosterWhere, courseID).Scan(&cnt); err != nil {
			return false, false, false, err
		}
		if cnt >= *maxStudents {
			return true, false, false, nil
		}
	}

	res, err = tx.ExecContext(ctx, `
		INSERT INTO course_students (course_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, courseID, studentID)
	if err != nil {
		return false, false, false, err
	}
	n, err = res.RowsAffected()
	if err != nil {
		return false, false, false, err
	}

	if err := tx.Commit(); err != nil {
		return false, false, false, err
	}
	return true, true, n > 0, nil
}

// MarkRequestReviewed переводит заявку из pending в терминальный статус.
// Условие по статусу делает переход атомарным: второй рецензент получит
// false.
func MarkRequestReviewed(ctx context.Context, database *sql.DB, id int64, status models.RequestStatus, reviewerID int64, comment *string, at time.Time) (bool, error) {
	res, err := database.ExecContext(ctx, `
		UPDATE enrollment_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, comment = $5
		WHERE id = $1 AND status = 'pending'
	`, id, string(status), reviewerID, at, comment)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
