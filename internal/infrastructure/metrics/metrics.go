// Package metrics expone los colectores Prometheus del dashboard.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/optimal-price/internal/application/ports"
	"github.com/jhoicas/optimal-price/internal/domain/entity"
)

var _ ports.SubmissionRecorder = (*Recorder)(nil)

// Recorder agrupa los colectores; implementa ports.SubmissionRecorder.
type Recorder struct {
	Submissions     *prometheus.CounterVec
	Failures        *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	SessionsActive  prometheus.Gauge
}

// NewRecorder registra los colectores en reg (prometheus.DefaultRegisterer en producción).
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		Submissions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optimal_price_submissions_total",
				Help: "Total de envíos al servicio de precios por resultado",
			},
			[]string{"outcome"},
		),
		Failures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optimal_price_failures_total",
				Help: "Total de envíos fallidos por causa",
			},
			[]string{"kind"},
		),
		RequestDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "optimal_price_request_duration_seconds",
				Help:    "Duración de la llamada al servicio de precios en segundos",
				Buckets: prometheus.DefBuckets,
			},
		),
		SessionsActive: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "optimal_price_sessions_active",
				Help: "Sesiones de dashboard activas",
			},
		),
	}
}

// SubmissionIgnored cuenta un envío descartado por haber otro en vuelo.
func (r *Recorder) SubmissionIgnored() {
	r.Submissions.WithLabelValues("ignored").Inc()
}

// SubmissionCompleted registra el estado terminal de un ciclo y su duración.
func (r *Recorder) SubmissionCompleted(status entity.RequestStatus, failureKind string, elapsed time.Duration) {
	r.Submissions.WithLabelValues(string(status)).Inc()
	if status == entity.StatusFailed {
		r.Failures.WithLabelValues(failureKind).Inc()
	}
	r.RequestDuration.Observe(elapsed.Seconds())
}

// SessionOpened / SessionClosed mantienen el gauge de sesiones.
func (r *Recorder) SessionOpened() { r.SessionsActive.Inc() }
func (r *Recorder) SessionClosed() { r.SessionsActive.Dec() }
