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

// Заявки на зачисление: pending -> approved | rejected, оба статуса
// терминальны. Заявки не удаляются.

// RequestEnrollment — заявка от ученика, который ещё не в составе и не
// подавал заявку на этот курс раньше (в любом статусе).
func RequestEnrollment(ctx context.Context, database *sql.DB, studentID, courseID int64) (int64, error) {
	if _, err := getUser(ctx, database, studentID); err != nil {
		return 0, err
	}
	course, err := getCourse(ctx, database, courseID)
	if err != nil {
		return 0, err
	}
	enrolled, err := db.InEffectiveRoster(ctx, database, course.ID, studentID)
	if err != nil {
		return 0, err
	}
	if enrolled {
		return 0, ErrAlreadyEnrolled
	}
	id, err := db.CreateEnrollmentRequest(ctx, database, course.ID, studentID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, ErrDuplicateRequest
		}
		return 0, err
	}
	metrics.EnrollmentRequests.WithLabelValues("pending").Inc()
	return id, nil
}

// ListPendingRequests — очередь нерассмотренных заявок курса; доступна
// тому же кругу, что и решение по ним.
func ListPendingRequests(ctx context.Context, database *sql.DB, actorID, courseID int64) ([]models.EnrollmentRequest, error) {
	actor, err := getUser(ctx, database, actorID)
	if err != nil {
		return nil, err
	}
	course, err := getCourse(ctx, database, courseID)
	if err != nil {
		return nil, err
	}
	if !CanReviewEnrollmentRequest(actor, course) {
		return nil, ErrPermissionDenied
	}
	return db.ListPendingRequests(ctx, database, courseID)
}

// ReviewRequest — решение по заявке. Одобрение переводит заявку и
// зачисляет ученика одной транзакцией: либо случилось и то и другое,
// либо заявка остаётся pending. Отказ только фиксируется.
// reviewed_by/reviewed_at ставятся в обоих случаях.
func ReviewRequest(ctx context.Context, database *sql.DB, reviewerID, requestID int64, approve bool, comment string) error {
	reviewer, err := getUser(ctx, database, reviewerID)
	if err != nil {
		return err
	}
	req, err := db.GetRequestByID(ctx, database, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrNotFound
	}
	course, err := getCourse(ctx, database, req.CourseID)
	if err != nil {
		return err
	}
	if !CanReviewEnrollmentRequest(reviewer, course) {
		return ErrPermissionDenied
	}

	var commentPtr *string
	if comment != "" {
		commentPtr = &comment
	}
	now := time.Now().UTC()

	if approve {
		reviewed, fits, added, err := db.ApproveEnrollmentRequest(ctx, database,
			req.ID, course.ID, req.StudentID, reviewerID, commentPtr, course.MaxStudents, now)
		if err != nil {
			return err
		}
		if !reviewed {
			return ErrAlreadyReviewed
		}
		if !fits {
			return ErrCapacityExceeded
		}
		if added {
			metrics.Enrollments.Inc()
		}
		metrics.EnrollmentRequests.WithLabelValues(string(models.RequestApproved)).Inc()
	} else {
		ok, err := db.MarkRequestReviewed(ctx, database, req.ID, models.RequestRejected, reviewerID, commentPtr, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyReviewed
		}
		metrics.EnrollmentRequests.WithLabelValues(string(models.RequestRejected)).Inc()
	}

	title := "Заявка на зачисление отклонена"
	if approve {
		title = "Заявка на зачисление одобрена"
	}
	if err := db.CreateNotification(ctx, database, models.Notification{
		CourseID:    course.ID,
		RecipientID: req.StudentID,
		Kind:        models.NotifyEnrollment,
		Title:       title,
		Message:     course.Title,
	}); err != nil {
		observability.CaptureErr(err)
	}
	return nil
}
