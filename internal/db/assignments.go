package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/strhzy/classroom-course/internal/models"
)

const assignmentCols = `id, course_id, title, description, status, due_date, allow_late_submissions,
	max_points, passing_score, is_group_assignment, group_size_min, group_size_max, created_at, published_at`

func scanAssignment(row interface{ Scan(...any) error }) (*models.Assignment, error) {
	var a models.Assignment
	err := row.Scan(&a.ID, &a.CourseID, &a.Title, &a.Description, &a.Status, &a.DueDate,
		&a.AllowLateSubmissions, &a.MaxPoints, &a.PassingScore, &a.IsGroupAssignment,
		&a.GroupSizeMin, &a.GroupSizeMax, &a.CreatedAt, &a.PublishedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func CreateAssignment(ctx context.Context, database *sql.DB, a models.Assignment) (int64, error) {
	if a.Status == "" {
		a.Status = models.AssignmentDraft
	}
	if a.MaxPoints == 0 {
		a.MaxPoints = 100
	}
	if a.GroupSizeMin == 0 {
		a.GroupSizeMin = 1
	}
	if a.GroupSizeMax == 0 {
		a.GroupSizeMax = 1
	}
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO assignments (course_id, title, description, status, due_date, allow_late_submissions,
			max_points, passing_score, is_group_assignment, group_size_min, group_size_max)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, a.CourseID, a.Title, a.Description, string(a.Status), a.DueDate, a.AllowLateSubmissions,
		a.MaxPoints, a.PassingScore, a.IsGroupAssignment, a.GroupSizeMin, a.GroupSizeMax).Scan(&id)
	return id, err
}

func GetAssignmentByID(ctx context.Context, database *sql.DB, id int64) (*models.Assignment, error) {
	row := database.QueryRowContext(ctx, `SELECT `+assignmentCols+` FROM assignments WHERE id = $1`, id)
	a, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func ListAssignmentsByCourse(ctx context.Context, database *sql.DB, courseID int64) ([]models.Assignment, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT `+assignmentCols+`
		FROM assignments
		WHERE course_id = $1
		ORDER BY due_date DESC NULLS LAST, created_at DESC
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func UpdateAssignment(ctx context.Context, database *sql.DB, a models.Assignment) error {
	_, err := database.ExecContext(ctx, `
		UPDATE assignments
		SET title = $2, description = $3, due_date = $4, allow_late_submissions = $5,
		    max_points = $6, passing_score = $7, is_group_assignment = $8,
		    group_size_min = $9, group_size_max = $10
		WHERE id = $1
	`, a.ID, a.Title, a.Description, a.DueDate, a.AllowLateSubmissions,
		a.MaxPoints, a.PassingScore, a.IsGroupAssignment, a.GroupSizeMin, a.GroupSizeMax)
	return err
}

// TransitionAssignment — переход строго из from в to, без перескоков и
// обратных рёбер. false — задание уже не в ожидаемом статусе.
func TransitionAssignment(ctx context.Context, database *sql.DB, id int64, from, to models.AssignmentStatus, at time.Time) (bool, error) {
	var publishedAt any
	if to == models.AssignmentPublished {
		publishedAt = at
	}
	res, err := database.ExecContext(ctx, `
		UPDATE assignments
		SET status = $3, published_at = COALESCE($4::timestamptz, published_at)
		WHERE id = $1 AND status = $2
	`, id, string(from), string(to), publishedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
