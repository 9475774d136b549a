// Package metrics defines and registers all custom Prometheus metrics for the
// pileta admin API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init, so
// importing the package is enough; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pileta"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password recovery operations.
// Labels:
//   - step: "verificar" (identity check) or "cambiar" (password change)
//   - result: "ok" or "rejected"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password recovery operations, by step and result.",
	},
	[]string{"step", "result"},
)

// ── Scheduling metrics ────────────────────────────────────────────────────────

// InscripcionesTotal counts enrollment attempts.
// Label:
//   - result: "ok", "full", "duplicate" or "error"
var InscripcionesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inscripciones_total",
		Help:      "Total number of enrollment attempts, by result.",
	},
	[]string{"result"},
)

// AsistenciasRegistradasTotal counts attendance rows written by the bulk
// registration endpoint.
var AsistenciasRegistradasTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asistencias_registradas_total",
		Help:      "Total number of attendance records written.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificacionesDispatchedTotal counts notifications delivered by the
// background dispatcher.
// Label:
//   - tipo: "cuota_vencida", "inscripcion" or "general"
var NotificacionesDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notificaciones_dispatched_total",
		Help:      "Total number of notifications delivered, by type.",
	},
	[]string{"tipo"},
)

// NotificacionesErrorsTotal counts notifications that failed delivery.
// Label:
//   - reason: short description of the failure (e.g. "process_failed")
var NotificacionesErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notificaciones_errors_total",
		Help:      "Total number of notifications that failed delivery.",
	},
	[]string{"reason"},
)

// NotificacionesQueueDepth tracks the current number of notifications waiting
// in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificacionesQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notificaciones_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
