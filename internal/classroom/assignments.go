package classroom

import (
	"context"
	"database/sql"
	"time"

	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/models"
)

// Жизненный цикл задания: draft -> published -> closed, без перескоков
// и без обратных переходов; closed терминален, переоткрытия нет.
// Автозакрытия по сроку тоже нет — переходы только по воле вызывающего.

func getAssignment(ctx context.Context, database *sql.DB, id int64) (*models.Assignment, error) {
	a, err := db.GetAssignmentByID(ctx, database, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func CreateAssignment(ctx context.Context, database *sql.DB, actorID int64, a models.Assignment) (int64, error) {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return 0, err
	}
	course, err := getCourse(ctx, database, a.CourseID)
	if err != nil {
		return 0, err
	}
	if !CanEditCourse(actor, course) {
		return 0, ErrPermissionDenied
	}
	a.Status = models.AssignmentDraft
	return db.CreateAssignment(ctx, database, a)
}

func UpdateAssignment(ctx context.Context, database *sql.DB, actorID int64, a models.Assignment) error {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return err
	}
	current, err := getAssignment(ctx, database, a.ID)
	if err != nil {
		return err
	}
	course, err := getCourse(ctx, database, current.CourseID)
	if err != nil {
		return err
	}
	if !CanEditCourse(actor, course) {
		return ErrPermissionDenied
	}
	return db.UpdateAssignment(ctx, database, a)
}

func PublishAssignment(ctx context.Context, database *sql.DB, actorID, assignmentID int64) error {
	return transitionAssignment(ctx, database, actorID, assignmentID,
		models.AssignmentDraft, models.AssignmentPublished)
}

func CloseAssignment(ctx context.Context, database *sql.DB, actorID, assignmentID int64) error {
	return transitionAssignment(ctx, database, actorID, assignmentID,
		models.AssignmentPublished, models.AssignmentClosed)
}

func transitionAssignment(ctx context.Context, database *sql.DB, actorID, assignmentID int64, from, to models.AssignmentStatus) error {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return err
	}
	a, err := getAssignment(ctx, database, assignmentID)
	if err != nil {
		return err
	}
	course, err := getCourse(ctx, database, a.CourseID)
	if err != nil {
		return err
	}
	if !CanEditCourse(actor, course) {
		return ErrPermissionDenied
	}
	ok, err := db.TransitionAssignment(ctx, database, assignmentID, from, to, time.Now().UTC())
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}
