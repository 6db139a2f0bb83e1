package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Booking outcomes.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeReused    = "reused"
	OutcomeExisting  = "existing"
	OutcomeFull      = "full"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Cancellation reasons.
const (
	ReasonCustomer = "customer"
	ReasonConflict = "conflict"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipfit_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flipfit_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipfit_bookings_total",
			Help: "Booking attempts by outcome",
		},
		[]string{"outcome"},
	)

	CancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipfit_cancellations_total",
			Help: "Bookings cancelled, by reason",
		},
		[]string{"reason"},
	)

	PromotionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipfit_waitlist_promotions_total",
			Help: "Waitlist promotion attempts by result",
		},
		[]string{"status"},
	)

	WaitlistEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flipfit_waitlist_entries_total",
			Help: "Total number of waitlist entries created",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipfit_notifications_total",
			Help: "Notifications emitted, by transport and status",
		},
		[]string{"transport", "status"},
	)

	KafkaMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipfit_kafka_messages_total",
			Help: "Kafka messages handled, by direction and status",
		},
		[]string{"direction", "topic", "status"},
	)

	KafkaDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flipfit_kafka_duration_seconds",
			Help:    "Kafka publish and handle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"direction", "topic"},
	)

	LockWaitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flipfit_slot_lock_wait_seconds",
			Help:    "Time spent waiting for a slot lock",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"backend", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(outcome string) {
	BookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordCancellation(reason string) {
	CancellationsTotal.WithLabelValues(reason).Inc()
}

func RecordPromotion(status string) {
	PromotionsTotal.WithLabelValues(status).Inc()
}

func RecordWaitlistEntry() {
	WaitlistEntriesTotal.Inc()
}

func RecordNotification(transport, status string) {
	NotificationsTotal.WithLabelValues(transport, status).Inc()
}

func RecordKafka(direction, topic, status string, duration float64) {
	KafkaMessagesTotal.WithLabelValues(direction, topic, status).Inc()
	KafkaDuration.WithLabelValues(direction, topic).Observe(duration)
}

func RecordLockWait(backend, status string, duration float64) {
	LockWaitDuration.WithLabelValues(backend, status).Observe(duration)
}
