package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/strhzy/classroom-course/internal/models"
)

const submissionCols = `id, assignment_id, student_id, text_response, file_ref, status,
	score, feedback, graded_by, graded_at, submitted_at, is_late`

func scanSubmission(row interface{ Scan(...any) error }) (*models.Submission, error) {
	var s models.Submission
	err := row.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.TextResponse, &s.FileRef, &s.Status,
		&s.Score, &s.Feedback, &s.GradedBy, &s.GradedAt, &s.SubmittedAt, &s.IsLate)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func GetSubmission(ctx context.Context, database *sql.DB, assignmentID, studentID int64) (*models.Submission, error) {
	row := database.QueryRowContext(ctx, `
		SELECT `+submissionCols+`
		FROM submissions
		WHERE assignment_id = $1 AND student_id = $2
	`, assignmentID, studentID)
	s, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func GetSubmissionByID(ctx context.Context, database *sql.DB, id int64) (*models.Submission, error) {
	row := database.QueryRowContext(ctx, `SELECT `+submissionCols+` FROM submissions WHERE id = $1`, id)
	s, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// InsertSubmission — первая сдача; конкурентный дубль упрётся в
// UNIQUE (assignment_id, student_id).
func InsertSubmission(ctx context.Context, database *sql.DB, s models.Submission) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO submissions (assignment_id, student_id, text_response, file_ref, status, submitted_at, is_late)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, s.AssignmentID, s.StudentID, s.TextResponse, s.FileRef, string(s.Status), s.SubmittedAt, s.IsLate).Scan(&id)
	return id, err
}

// ResubmitSubmission перезаписывает возвращённое решение и сбрасывает
// его в submitted. false — решение уже не в статусе returned.
func ResubmitSubmission(ctx context.Context, database *sql.DB, id int64, textResponse string, fileRef *string, at time.Time, isLate bool) (bool, error) {
	res, err := database.ExecContext(ctx, `
		UPDATE submissions
		SET text_response = $2, file_ref = $3, status = 'submitted',
		    score = NULL, graded_by = NULL, graded_at = NULL,
		    submitted_at = $4, is_late = $5
		WHERE id = $1 AND status = 'returned'
	`, id, textResponse, fileRef, at, isLate)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func GradeSubmission(ctx context.Context, database *sql.DB, id int64, score int, feedback string, status models.SubmissionStatus, graderID int64, at time.Time) error {
	_, err := database.ExecContext(ctx, `
		UPDATE submissions
		SET score = $2, feedback = $3, status = $4, graded_by = $5, graded_at = $6
		WHERE id = $1
	`, id, score, feedback, string(status), graderID, at)
	return err
}

func ListSubmissionsByAssignment(ctx context.Context, database *sql.DB, assignmentID int64) ([]models.Submission, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT `+submissionCols+`
		FROM submissions
		WHERE assignment_id = $1
		ORDER BY submitted_at DESC
	`, assignmentID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// SubmissionScore — строка для ведомости: решение с именем ученика.
type SubmissionScore struct {
	AssignmentID int64
	StudentID    int64
	StudentName  string
	Status       models.SubmissionStatus
	Score        *int
	IsLate       bool
}

func ListCourseScores(ctx context.Context, database *sql.DB, courseID int64) ([]SubmissionScore, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT s.assignment_id, s.student_id, u.name, s.status, s.score, s.is_late
		FROM submissions s
		JOIN assignments a ON a.id = s.assignment_id
		JOIN users u ON u.id = s.student_id
		WHERE a.course_id = $1
		ORDER BY u.name, s.assignment_id
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []SubmissionScore
	for rows.Next() {
		var r SubmissionScore
		if err := rows.Scan(&r.AssignmentID, &r.StudentID, &r.StudentName, &r.Status, &r.Score, &r.IsLate); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
