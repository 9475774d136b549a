package ports

import (
	"context"
	"time"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// CuotaFilter narrows cuota listings.
type CuotaFilter struct {
	AlumnoID    string
	SoloImpagas bool
	// VencidasAl, when non-zero, keeps only unpaid cuotas due before it.
	VencidasAl time.Time
}

// CuotaRepository persists dues.
type CuotaRepository interface {
	Create(ctx context.Context, c *domain.Cuota) (*domain.Cuota, error)
	FindByID(ctx context.Context, id string) (*domain.Cuota, error)
	List(ctx context.Context, filter CuotaFilter) ([]domain.Cuota, error)
	MarkPagada(ctx context.Context, id string, at time.Time) error
}

// CreateCuotaInput carries a new due assignment.
type CreateCuotaInput struct {
	AlumnoID         string
	Monto            float64
	FechaVencimiento time.Time
	Observaciones    string
}

// EstadoCuenta summarizes an alumno's standing: what is owed, what is
// overdue, and when the next due date lands.
type EstadoCuenta struct {
	AlDia              bool       `json:"al_dia"`
	TotalPendiente     float64    `json:"total_pendiente"`
	CuotasImpagas      int        `json:"cuotas_impagas"`
	CuotasVencidas     int        `json:"cuotas_vencidas"`
	ProximoVencimiento *time.Time `json:"proximo_vencimiento,omitempty"`
}

// Movimiento is one settled cuota in the account statement.
type Movimiento struct {
	CuotaID  string    `json:"cuota_id"`
	Monto    float64   `json:"monto"`
	Fecha    time.Time `json:"fecha"`
	Concepto string    `json:"concepto,omitempty"`
}

// CuotaService defines use-case operations for dues.
type CuotaService interface {
	Create(ctx context.Context, input CreateCuotaInput) (*domain.Cuota, error)
	List(ctx context.Context, filter CuotaFilter) ([]domain.Cuota, error)
	ListByAlumno(ctx context.Context, alumnoID string) ([]domain.Cuota, error)
	MarkPagada(ctx context.Context, id string) (*domain.Cuota, error)
	// Vencidas lists unpaid cuotas past due at the given time; the overdue
	// notifier feeds from it.
	Vencidas(ctx context.Context, asOf time.Time) ([]domain.Cuota, error)
	// EstadoCuenta summarizes the alumno's unpaid cuotas.
	EstadoCuenta(ctx context.Context, alumnoID string) (*EstadoCuenta, error)
	// Movimientos lists the alumno's settled cuotas, newest first.
	Movimientos(ctx context.Context, alumnoID string) ([]Movimiento, error)
}
