package classroom

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/models"
)

// Справочник ролей. У каждой учётки ровно один профиль; его отсутствие —
// ErrNotFound.

func getUser(ctx context.Context, database *sql.DB, id int64) (*models.User, error) {
	u, err := db.GetUserByID(ctx, database, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func RoleOf(ctx context.Context, database *sql.DB, userID int64) (models.Role, error) {
	u, err := getUser(ctx, database, userID)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func IsSuperuser(ctx context.Context, database *sql.DB, userID int64) (bool, error) {
	u, err := getUser(ctx, database, userID)
	if err != nil {
		return false, err
	}
	return u.IsSuperuser, nil
}

func IsStaffLike(ctx context.Context, database *sql.DB, userID int64) (bool, error) {
	u, err := getUser(ctx, database, userID)
	if err != nil {
		return false, err
	}
	return u.IsStaffLike(), nil
}

// SetUserRole — смена роли учётной записи; доступна staff и
// суперпользователю.
func SetUserRole(ctx context.Context, database *sql.DB, actorID, userID int64, role models.Role) error {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return err
	}
	if !actor.IsStaffLike() {
		return ErrPermissionDenied
	}
	if !role.Valid() {
		return fmt.Errorf("недопустимая роль: %s", role)
	}
	if _, err := getUser(ctx, database, userID); err != nil {
		return err
	}
	return db.SetUserRole(ctx, database, userID, role)
}
