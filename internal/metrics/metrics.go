package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Enrollments = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "classroom", Name: "enrollments_total", Help: "Direct course enrollments",
	})
	EnrollmentRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "classroom", Name: "enrollment_requests_total", Help: "Enrollment request transitions",
	}, []string{"status"})
	Submissions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "classroom", Name: "submissions_total", Help: "Assignment submissions (incl. resubmissions)",
	})
	Grades = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "classroom", Name: "grades_total", Help: "Graded/returned submissions",
	})
	FileReviews = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "classroom", Name: "file_reviews_total", Help: "File review creates and updates",
	})
	NotifyErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "classroom", Name: "notify_errors_total", Help: "Notification delivery errors",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "classroom", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(Enrollments, EnrollmentRequests, Submissions, Grades, FileReviews, NotifyErrors, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
