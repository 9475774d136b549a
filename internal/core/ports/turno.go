package ports

import (
	"context"
	"time"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// TurnoFilter narrows turno listings. Zero values mean "no filter".
type TurnoFilter struct {
	Dias       []int // weekdays, 0=domingo … 6=sábado
	NivelID    string
	ProfesorID string
	SoloActivo bool
}

// TurnoRepository persists recurring weekly slots.
type TurnoRepository interface {
	Create(ctx context.Context, t *domain.Turno) (*domain.Turno, error)
	Update(ctx context.Context, t *domain.Turno) (*domain.Turno, error)
	SetActivo(ctx context.Context, id string, activo bool) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Turno, error)
	List(ctx context.Context, filter TurnoFilter) ([]domain.Turno, error)
}

// ClaseRepository persists dated occurrences of turnos.
type ClaseRepository interface {
	// InsertMissing inserts the given clases, skipping dates that already
	// exist for the turno, and returns how many were actually created.
	InsertMissing(ctx context.Context, clases []domain.Clase) (int, error)
	FindByID(ctx context.Context, id string) (*domain.Clase, error)
	ListByTurno(ctx context.Context, turnoID string) ([]domain.Clase, error)
}

// UpdateTurnoInput carries a full turno update; PatchTurnoInput carries the
// partial form used by the activo toggle.
type UpdateTurnoInput struct {
	DiaSemana  int
	HoraInicio string
	HoraFin    string
	NivelID    string
	ProfesorID string
	PiletaID   string
	CupoMaximo int
	Activo     bool
}

type PatchTurnoInput struct {
	Activo     *bool
	CupoMaximo *int
}

// GenerarClasesInput spans the period to materialize clases for.
type GenerarClasesInput struct {
	TurnoID string
	Desde   time.Time
	Hasta   time.Time
}

// NivelTurnos groups a nivel's active turnos for the per-level tab view.
type NivelTurnos struct {
	Nivel  domain.Nivel   `json:"nivel"`
	Turnos []domain.Turno `json:"turnos"`
}

// TurnoService defines use-case operations for turnos and their clases.
type TurnoService interface {
	Create(ctx context.Context, input UpdateTurnoInput) (*domain.Turno, error)
	Update(ctx context.Context, id string, input UpdateTurnoInput) (*domain.Turno, error)
	Patch(ctx context.Context, id string, input PatchTurnoInput) (*domain.Turno, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Turno, error)
	List(ctx context.Context, filter TurnoFilter) ([]domain.Turno, error)
	// PorNiveles groups active turnos by nivel, in nivel order.
	PorNiveles(ctx context.Context) ([]NivelTurnos, error)
	// GenerarClases materializes the turno's class dates in the span and
	// returns the number of newly created clases.
	GenerarClases(ctx context.Context, input GenerarClasesInput) (int, error)
	ListClases(ctx context.Context, turnoID string) ([]domain.Clase, error)
}
