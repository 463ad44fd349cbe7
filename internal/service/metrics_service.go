package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	bookingsCreated prometheus.Counter
	bookingConflict prometheus.Counter
	notifications   prometheus.Counter
	assistantCalls  *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	bookingsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Total booking requests accepted into the approval chain",
	})

	bookingConflict := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_conflicts_total",
		Help: "Total booking requests rejected because the venue slot was taken",
	})

	notifications := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_emitted_total",
		Help: "Total notifications appended to the feed",
	})

	assistantCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_requests_total",
		Help: "Total assistant operations by outcome",
	}, []string{"operation", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, bookingsCreated, bookingConflict, notifications, assistantCalls, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		bookingsCreated: bookingsCreated,
		bookingConflict: bookingConflict,
		notifications:   notifications,
		assistantCalls:  assistantCalls,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordBookingCreated counts an accepted booking request.
func (m *MetricsService) RecordBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

// RecordBookingConflict counts a slot-taken rejection.
func (m *MetricsService) RecordBookingConflict() {
	if m == nil {
		return
	}
	m.bookingConflict.Inc()
}

// RecordNotification counts a feed append.
func (m *MetricsService) RecordNotification() {
	if m == nil {
		return
	}
	m.notifications.Inc()
}

// RecordAssistantCall counts one assistant operation by outcome.
func (m *MetricsService) RecordAssistantCall(operation string, ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "degraded"
	}
	m.assistantCalls.WithLabelValues(operation, outcome).Inc()
}
