package db

import (
	"context"
	"database/sql"

	"github.com/strhzy/classroom-course/internal/models"
)

const userCols = `id, telegram_id, name, email, role, is_superuser, is_active, group_id, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.TelegramID, &u.Name, &u.Email, &u.Role, &u.IsSuperuser, &u.IsActive, &u.GroupID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateUser(ctx context.Context, database *sql.DB, u models.User) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO users (telegram_id, name, email, role, is_superuser, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, u.TelegramID, u.Name, u.Email, string(u.Role), u.IsSuperuser, u.IsActive).Scan(&id)
	return id, err
}

func GetUserByID(ctx context.Context, database *sql.DB, id int64) (*models.User, error) {
	row := database.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func GetUserByTelegramID(ctx context.Context, database *sql.DB, telegramID int64) (*models.User, error) {
	row := database.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE telegram_id = $1`, telegramID)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func SetUserRole(ctx context.Context, database *sql.DB, userID int64, role models.Role) error {
	_, err := database.ExecContext(ctx, `UPDATE users SET role = $2 WHERE id = $1`, userID, string(role))
	return err
}

// SetUserGroup переводит ученика в группу (nil — убирает из группы).
func SetUserGroup(ctx context.Context, database *sql.DB, userID int64, groupID *int64) error {
	_, err := database.ExecContext(ctx, `UPDATE users SET group_id = $2 WHERE id = $1`, userID, groupID)
	return err
}

// EnsureSuperuser — бутстрап администратора по telegram_id при старте.
func EnsureSuperuser(ctx context.Context, database *sql.DB, telegramID int64, name string) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO users (telegram_id, name, role, is_superuser)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (telegram_id) WHERE telegram_id <> 0
		DO UPDATE SET is_superuser = TRUE
	`, telegramID, name, string(models.Admin))
	return err
}
