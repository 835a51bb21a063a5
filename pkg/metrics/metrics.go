package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LeaveSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "staffdesk", Name: "leave_submitted_total", Help: "Number of leave requests submitted."},
	)
	LeaveTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staffdesk", Name: "leave_transitions_total", Help: "Number of leave request status transitions by outcome status."},
		[]string{"status"},
	)
	PhotoUploads = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "staffdesk", Name: "photo_uploads_total", Help: "Number of photos uploaded."},
	)
	PhotoUploadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "staffdesk", Name: "photo_upload_bytes_total", Help: "Total decoded bytes written to blob storage."},
	)
	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staffdesk", Name: "notifications_sent_total", Help: "Number of notifications delivered by event kind."},
		[]string{"kind"},
	)
	NotificationsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staffdesk", Name: "notifications_failed_total", Help: "Number of notification delivery failures by event kind."},
		[]string{"kind"},
	)
	NotificationsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "staffdesk", Name: "notifications_dropped_total", Help: "Number of notifications dropped because the queue was full."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staffdesk", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staffdesk", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(
		LeaveSubmitted,
		LeaveTransitions,
		PhotoUploads,
		PhotoUploadBytes,
		NotificationsSent,
		NotificationsFailed,
		NotificationsDropped,
		RateLimitAllowed,
		RateLimitRejected,
	)
}
