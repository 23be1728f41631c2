package db

import (
	"context"
	"database/sql"

	"github.com/strhzy/classroom-course/internal/models"
)

func CreateGroup(ctx context.Context, database *sql.DB, g models.StudentGroup) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO student_groups (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id
	`, g.Name, g.Description, g.CreatedBy).Scan(&id)
	return id, err
}

func GetGroupByID(ctx context.Context, database *sql.DB, id int64) (*models.StudentGroup, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, name, description, created_by, created_at
		FROM student_groups WHERE id = $1
	`, id)
	var g models.StudentGroup
	if err := row.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func UpdateGroup(ctx context.Context, database *sql.DB, g models.StudentGroup) error {
	_, err := database.ExecContext(ctx, `
		UPDATE student_groups SET name = $2, description = $3 WHERE id = $1
	`, g.ID, g.Name, g.Description)
	return err
}

// DeleteGroup удаляет группу; ссылки в профилях обнуляются FK-правилом
// ON DELETE SET NULL, ученики остаются.
func DeleteGroup(ctx context.Context, database *sql.DB, id int64) error {
	_, err := database.ExecContext(ctx, `DELETE FROM student_groups WHERE id = $1`, id)
	return err
}

// ListGroupMembers — текущий состав группы (профили с group_id = id).
func ListGroupMembers(ctx context.Context, database *sql.DB, groupID int64) ([]models.User, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT `+userCols+` FROM users WHERE group_id = $1 ORDER BY name
	`, groupID)
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
