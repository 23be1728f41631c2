package classroom

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/metrics"
	"github.com/strhzy/classroom-course/internal/models"
	"github.com/strhzy/classroom-course/internal/observability"
)

// Решения: submitted -> graded | returned; единственное обратное ребро
// returned -> submitted (повторная сдача).

// SubmitAssignment — сдача решения участником состава курса. Повторная
// сдача возможна только по возвращённому решению и перезаписывает его.
// Просрочка фиксируется здесь и больше не пересчитывается.
func SubmitAssignment(ctx context.Context, database *sql.DB, studentID, assignmentID int64, textResponse string, fileRef *string) (*models.Submission, error) {
	if _, err := getUser(ctx, database, studentID); err != nil {
		return nil, err
	}
	a, err := getAssignment(ctx, database, assignmentID)
	if err != nil {
		return nil, err
	}
	inRoster, err := db.InEffectiveRoster(ctx, database, a.CourseID, studentID)
	if err != nil {
		return nil, err
	}
	if !inRoster {
		return nil, ErrPermissionDenied
	}

	now := time.Now().UTC()
	if !a.CanSubmit(now) {
		return nil, ErrNotSubmittable
	}
	isLate := models.LateAt(now, a.DueDate)

	existing, err := db.GetSubmission(ctx, database, assignmentID, studentID)
	if err != nil {
		return nil, err
	}
	switch {
	case existing == nil:
		s := models.Submission{
			AssignmentID: assignmentID,
			StudentID:    studentID,
			TextResponse: textResponse,
			FileRef:      fileRef,
			Status:       models.SubmissionSubmitted,
			SubmittedAt:  now,
			IsLate:       isLate,
		}
		id, err := db.InsertSubmission(ctx, database, s)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return nil, ErrDuplicateSubmission
			}
			return nil, err
		}
		s.ID = id
		metrics.Submissions.Inc()
		return &s, nil
	case existing.Status != models.SubmissionReturned:
		return nil, ErrDuplicateSubmission
	default:
		ok, err := db.ResubmitSubmission(ctx, database, existing.ID, textResponse, fileRef, now, isLate)
		if err != nil {
			return nil, err
		}
		if !ok {
			// конкурентная пересдача успела раньше
			return nil, ErrDuplicateSubmission
		}
		metrics.Submissions.Inc()
		return db.GetSubmissionByID(ctx, database, existing.ID)
	}
}

// ListSubmissions — решения задания для проверяющего.
func ListSubmissions(ctx context.Context, database *sql.DB, actorID, assignmentID int64) ([]models.Submission, error) {
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
	return db.ListSubmissionsByAssignment(ctx, database, assignmentID)
}

// GradeSubmission — оценка решения: graded либо returned (на доработку).
func GradeSubmission(ctx context.Context, database *sql.DB, graderID, submissionID int64, score int, feedback string, status models.SubmissionStatus) error {
	if status != models.SubmissionGraded && status != models.SubmissionReturned {
		return ErrInvalidTransition
	}
	grader, err := getUser(ctx, database, graderID)
	if err != nil {
		return err
	}
	sub, err := db.GetSubmissionByID(ctx, database, submissionID)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrNotFound
	}
	a, err := getAssignment(ctx, database, sub.AssignmentID)
	if err != nil {
		return err
	}
	course, err := getCourse(ctx, database, a.CourseID)
	if err != nil {
		return err
	}
	ok, err := CanGradeAssignment(ctx, database, grader, course)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}

	if err := db.GradeSubmission(ctx, database, sub.ID, score, feedback, status, graderID, time.Now().UTC()); err != nil {
		return err
	}
	metrics.Grades.Inc()

	title := fmt.Sprintf("Задание «%s» оценено", a.Title)
	if status == models.SubmissionReturned {
		title = fmt.Sprintf("Задание «%s» возвращено на доработку", a.Title)
	}
	if err := db.CreateNotification(ctx, database, models.Notification{
		CourseID:    course.ID,
		RecipientID: sub.StudentID,
		Kind:        models.NotifyGrade,
		Title:       title,
		Message:     feedback,
	}); err != nil {
		observability.CaptureErr(err)
	}
	return nil
}
