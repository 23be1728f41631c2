package classroom

import (
	"context"
	"database/sql"

	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/models"
)

func CreateGroup(ctx context.Context, database *sql.DB, actorID int64, name, description string) (int64, error) {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return 0, err
	}
	if !CanManageGroups(actor) {
		return 0, ErrPermissionDenied
	}
	return db.CreateGroup(ctx, database, models.StudentGroup{
		Name:        name,
		Description: description,
		CreatedBy:   actorID,
	})
}

func UpdateGroup(ctx context.Context, database *sql.DB, actorID int64, g models.StudentGroup) error {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return err
	}
	current, err := db.GetGroupByID(ctx, database, g.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}
	if !CanEditGroup(actor, current) {
		return ErrPermissionDenied
	}
	return db.UpdateGroup(ctx, database, g)
}

// DeleteGroup удаляет группу явно. Зачисления учеников не каскадятся:
// обнуляется только ссылка в их профилях.
func DeleteGroup(ctx context.Context, database *sql.DB, actorID, groupID int64) error {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return err
	}
	group, err := db.GetGroupByID(ctx, database, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrNotFound
	}
	if !CanEditGroup(actor, group) {
		return ErrPermissionDenied
	}
	return db.DeleteGroup(ctx, database, groupID)
}

// AddStudentsToGroup добавляет учеников в группу. Берутся только
// профили с ролью student и без текущей группы; возвращает число
// добавленных.
func AddStudentsToGroup(ctx context.Context, database *sql.DB, actorID, groupID int64, studentIDs []int64) (int, error) {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return 0, err
	}
	group, err := db.GetGroupByID(ctx, database, groupID)
	if err != nil {
		return 0, err
	}
	if group == nil {
		return 0, ErrNotFound
	}
	if !CanEditGroup(actor, group) {
		return 0, ErrPermissionDenied
	}

	added := 0
	for _, id := range studentIDs {
		u, err := db.GetUserByID(ctx, database, id)
		if err != nil {
			return added, err
		}
		if u == nil || !u.IsStudent() || u.GroupID != nil {
			continue
		}
		if err := db.SetUserGroup(ctx, database, id, &groupID); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
