package classroom

import "errors"

// Ожидаемые бизнес-исходы. Возвращаются вызывающему как есть, без
// ретраев: каждый отказ терминален для конкретного вызова.
var (
	ErrNotFound            = errors.New("запись не найдена")
	ErrPermissionDenied    = errors.New("доступ запрещён")
	ErrAlreadyEnrolled     = errors.New("пользователь уже записан на курс")
	ErrNotEnrolled         = errors.New("пользователь не записан на курс")
	ErrCapacityExceeded    = errors.New("достигнуто максимальное количество студентов")
	ErrDuplicateRequest    = errors.New("заявка на зачисление уже существует")
	ErrAlreadyReviewed     = errors.New("уже рассмотрено")
	ErrDuplicateSubmission = errors.New("решение этого задания уже отправлено")
	ErrNotSubmittable      = errors.New("отправка решений для этого задания невозможна")
	ErrInvalidTransition   = errors.New("недопустимый переход статуса")
)
