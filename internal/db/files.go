package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/strhzy/classroom-course/internal/models"
)

func CreateAssignmentFile(ctx context.Context, database *sql.DB, f models.AssignmentFile) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO assignment_files (assignment_id, student_id, file_ref, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, f.AssignmentID, f.StudentID, f.FileRef, f.Description).Scan(&id)
	return id, err
}

func GetAssignmentFileByID(ctx context.Context, database *sql.DB, id int64) (*models.AssignmentFile, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, assignment_id, student_id, file_ref, description, created_at
		FROM assignment_files WHERE id = $1
	`, id)
	var f models.AssignmentFile
	if err := row.Scan(&f.ID, &f.AssignmentID, &f.StudentID, &f.FileRef, &f.Description, &f.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func ListAssignmentFiles(ctx context.Context, database *sql.DB, assignmentID int64) ([]models.AssignmentFile, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, assignment_id, student_id, file_ref, description, created_at
		FROM assignment_files
		WHERE assignment_id = $1
		ORDER BY created_at
	`, assignmentID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.AssignmentFile
	for rows.Next() {
		var f models.AssignmentFile
		if err := rows.Scan(&f.ID, &f.AssignmentID, &f.StudentID, &f.FileRef, &f.Description, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

const reviewCols = `id, file_id, reviewer_id, status, feedback, points, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (*models.FileReview, error) {
	var r models.FileReview
	err := row.Scan(&r.ID, &r.FileID, &r.ReviewerID, &r.Status, &r.Feedback, &r.Points, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// InsertFileReview — повторная рецензия того же проверяющего упирается
// в UNIQUE (file_id, reviewer_id); редактировать надо существующую.
func InsertFileReview(ctx context.Context, database *sql.DB, r models.FileReview) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO file_reviews (file_id, reviewer_id, status, feedback, points)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.FileID, r.ReviewerID, string(r.Status), r.Feedback, r.Points).Scan(&id)
	return id, err
}

func GetFileReviewByID(ctx context.Context, database *sql.DB, id int64) (*models.FileReview, error) {
	row := database.QueryRowContext(ctx, `SELECT `+reviewCols+` FROM file_reviews WHERE id = $1`, id)
	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

func GetFileReview(ctx context.Context, database *sql.DB, fileID, reviewerID int64) (*models.FileReview, error) {
	row := database.QueryRowContext(ctx, `
		SELECT `+reviewCols+` FROM file_reviews WHERE file_id = $1 AND reviewer_id = $2
	`, fileID, reviewerID)
	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// UpdateFileReview — ограничений на смену статуса рецензии нет, любой
// статус может смениться на любой.
func UpdateFileReview(ctx context.Context, database *sql.DB, id int64, status models.ReviewStatus, feedback string, points *int, at time.Time) error {
	_, err := database.ExecContext(ctx, `
		UPDATE file_reviews
		SET status = $2, feedback = $3, points = $4, updated_at = $5
		WHERE id = $1
	`, id, string(status), feedback, points, at)
	return err
}
