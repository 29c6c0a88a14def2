package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration module.
type Metrics struct {
	RegistrationsCreated  prometheus.Counter
	RegistrationConflicts *prometheus.CounterVec
	RegisterDuration      prometheus.Histogram
}

// New creates a Metrics instance with all registration metrics registered.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ponto_registrations_created_total",
			Help: "Total number of successful company registrations",
		}),
		RegistrationConflicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ponto_registration_conflicts_total",
			Help: "Total number of registrations rejected per uniqueness conflict kind",
		}, []string{"kind"}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ponto_register_duration_seconds",
			Help:    "Duration of Register operations including password hashing",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementRegistrationsCreated records a successful registration.
func (m *Metrics) IncrementRegistrationsCreated() {
	m.RegistrationsCreated.Inc()
}

// IncrementConflict records a rejected registration for a conflict kind
// (cnpj, cpf, or email).
func (m *Metrics) IncrementConflict(kind string) {
	m.RegistrationConflicts.WithLabelValues(kind).Inc()
}

// ObserveRegister records the duration of a Register operation. Call with
// time.Now() captured at the start of the operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}
