// Package metrics define los contadores Prometheus de autenticación y bitácora.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resultados de login/registro.
const (
	OutcomeSuccess       = "success"
	OutcomeUserNotFound  = "user_not_found"
	OutcomeBadPassword   = "invalid_password"
	OutcomeValidation    = "validation"
	OutcomeDuplicate     = "duplicate_email"
	OutcomeStoreError    = "store_error"
	OutcomeSessionFailed = "session_error"
)

// Metrics agrupa los colectores de la aplicación.
type Metrics struct {
	LoginAttempts      *prometheus.CounterVec
	Registrations      *prometheus.CounterVec
	Logouts            prometheus.Counter
	AuditWriteFailures *prometheus.CounterVec
}

// New registra los colectores en reg. Usar prometheus.NewRegistry() en pruebas.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reservas",
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Intentos de login por resultado.",
		}, []string{"outcome"}),
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reservas",
			Subsystem: "auth",
			Name:      "registrations_total",
			Help:      "Registros de usuario por resultado.",
		}, []string{"outcome"}),
		Logouts: f.NewCounter(prometheus.CounterOpts{
			Namespace: "reservas",
			Subsystem: "auth",
			Name:      "logouts_total",
			Help:      "Cierres de sesión efectivos.",
		}),
		AuditWriteFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reservas",
			Subsystem: "bitacora",
			Name:      "write_failures_total",
			Help:      "Escrituras de bitácora fallidas (descartadas sin afectar la operación).",
		}, []string{"op"}),
	}
}

// NewNop registra en un registro propio; útil cuando no se exponen métricas.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
