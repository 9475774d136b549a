package ports

import (
	"context"
	"time"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// ReservaRepository persists pase libre day reservations.
type ReservaRepository interface {
	// Create inserts a reservation. A second reservation by the same alumno
	// for the same date fails with domain.ErrAlreadyReserved.
	Create(ctx context.Context, r *domain.Reserva) (*domain.Reserva, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Reserva, error)
	ListByAlumno(ctx context.Context, alumnoID string) ([]domain.Reserva, error)
	CountByTurnoFecha(ctx context.Context, turnoID string, fecha time.Time) (int, error)
}

// TurnoDisponible is one bookable turno for a given date, with the spots
// still open once fixed enrollments and that date's reservations are counted.
type TurnoDisponible struct {
	Turno   domain.Turno `json:"turno"`
	Lugares int          `json:"lugares"`
}

// PaseLibreService implements day-by-day booking for pase libre clients.
type PaseLibreService interface {
	// Disponibles lists the active turnos running on fecha's weekday that
	// still have open spots for that date.
	Disponibles(ctx context.Context, fecha time.Time) ([]TurnoDisponible, error)
	// Reservar books a spot in the turno for the date. The alumno must hold
	// pase libre and the fecha must fall on the turno's weekday.
	Reservar(ctx context.Context, alumnoID, turnoID string, fecha time.Time) (*domain.Reserva, error)
	MisReservas(ctx context.Context, alumnoID string) ([]domain.Reserva, error)
	// Cancelar removes the reservation; only its owner may cancel it.
	Cancelar(ctx context.Context, id, alumnoID string) error
}
