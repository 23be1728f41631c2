package classroom

import (
	"context"
	"database/sql"
	"time"

	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/metrics"
	"github.com/strhzy/classroom-course/internal/models"
	"github.com/strhzy/classroom-course/internal/observability"
)

// Файлы к заданию и порецензионная проверка: на пару (файл, проверяющий)
// одна рецензия; повторная попытка создания отклоняется, правки идут
// через UpdateFileReview.

// AttachAssignmentFile — ученик прикладывает вспомогательный файл к
// заданию; содержимое живёт во внешнем хранилище, здесь только ссылка.
func AttachAssignmentFile(ctx context.Context, database *sql.DB, studentID, assignmentID int64, fileRef, description string) (int64, error) {
	if _, err := getUser(ctx, database, studentID); err != nil {
		return 0, err
	}
	a, err := getAssignment(ctx, database, assignmentID)
	if err != nil {
		return 0, err
	}
	inRoster, err := db.InEffectiveRoster(ctx, database, a.CourseID, studentID)
	if err != nil {
		return 0, err
	}
	if !inRoster {
		return 0, ErrPermissionDenied
	}
	return db.CreateAssignmentFile(ctx, database, models.AssignmentFile{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FileRef:      fileRef,
		Description:  description,
	})
}

// ListAssignmentFiles — файлы задания для проверяющего.
func ListAssignmentFiles(ctx context.Context, database *sql.DB, actorID, assignmentID int64) ([]models.AssignmentFile, error) {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return nil, err
	}
	a, err := getAssignment(ctx, database, assignmentID)
	if err != nil {
		return nil, err
	}
	course, err := getCourse(ctx, database, a.CourseID)
	if err != nil {
		return nil, err
	}
	ok, err := CanGradeAssignment(ctx, database, actor, course)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}
	return db.ListAssignmentFiles(ctx, database, assignmentID)
}

// CanReviewFile — право рецензировать файл совпадает с правом оценивать
// его задание.
func CanReviewFile(ctx context.Context, database *sql.DB, user *models.User, file *models.AssignmentFile) (bool, error) {
	a, err := getAssignment(ctx, database, file.AssignmentID)
	if err != nil {
		return false, err
	}
	course, err := getCourse(ctx, database, a.CourseID)
	if err != nil {
		return false, err
	}
	return CanGradeAssignment(ctx, database, user, course)
}

func CreateFileReview(ctx context.Context, database *sql.DB, reviewerID, fileID int64, status models.ReviewStatus, feedback string, points *int) (int64, error) {
	reviewer, err := getUser(ctx, database, reviewerID)
	if err != nil {
		return 0, err
	}
	file, err := db.GetAssignmentFileByID(ctx, database, fileID)
	if err != nil {
		return 0, err
	}
	if file == nil {
		return 0, ErrNotFound
	}
	ok, err := CanReviewFile(ctx, database, reviewer, file)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrPermissionDenied
	}

	id, err := db.InsertFileReview(ctx, database, models.FileReview{
		FileID:     fileID,
		ReviewerID: reviewerID,
		Status:     status,
		Feedback:   feedback,
		Points:     points,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, ErrAlreadyReviewed
		}
		return 0, err
	}
	metrics.FileReviews.Inc()

	a, err := getAssignment(ctx, database, file.AssignmentID)
	if err != nil {
		observability.CaptureErr(err)
		return id, nil
	}
	if err := db.CreateNotification(ctx, database, models.Notification{
		CourseID:    a.CourseID,
		RecipientID: file.StudentID,
		Kind:        models.NotifyReview,
		Title:       "Файл к заданию проверен",
		Message:     feedback,
	}); err != nil {
		observability.CaptureErr(err)
	}
	return id, nil
}

// UpdateFileReview — правка существующей рецензии автором либо любым,
// кто вправе оценивать задание. Ограничений на смену статуса нет.
func UpdateFileReview(ctx context.Context, database *sql.DB, actorID, reviewID int64, status models.ReviewStatus, feedback string, points *int) error {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return err
	}
	review, err := db.GetFileReviewByID(ctx, database, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrNotFound
	}
	file, err := db.GetAssignmentFileByID(ctx, database, review.FileID)
	if err != nil {
		return err
	}
	if file == nil {
		return ErrNotFound
	}
	if actor.ID != review.ReviewerID {
		ok, err := CanReviewFile(ctx, database, actor, file)
		if err != nil {
			return err
		}
		if !ok {
			return ErrPermissionDenied
		}
	}
	if err := db.UpdateFileReview(ctx, database, review.ID, status, feedback, points, time.Now().UTC()); err != nil {
		return err
	}
	metrics.FileReviews.Inc()
	return nil
}
