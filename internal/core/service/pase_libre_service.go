package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// PaseLibreService implements day-by-day booking. A reservation occupies one
// spot in the turno for a single date; fixed inscripciones and that date's
// reservations count against cupo_maximo together.
type PaseLibreService struct {
	reservas      ports.ReservaRepository
	turnos        ports.TurnoRepository
	inscripciones ports.InscripcionRepository
	users         ports.UserRepository
	log           zerolog.Logger
}

func NewPaseLibreService(
	reservas ports.ReservaRepository,
	turnos ports.TurnoRepository,
	inscripciones ports.InscripcionRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *PaseLibreService {
	return &PaseLibreService{
		reservas:      reservas,
		turnos:        turnos,
		inscripciones: inscripciones,
		users:         users,
		log:           log,
	}
}

func (s *PaseLibreService) Disponibles(ctx context.Context, fecha time.Time) ([]ports.TurnoDisponible, error) {
	fecha = truncateToDay(fecha)
	turnos, err := s.turnos.List(ctx, ports.TurnoFilter{
		Dias:       []int{int(fecha.Weekday())},
		SoloActivo: true,
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.TurnoDisponible, 0, len(turnos))
	for _, turno := range turnos {
		lugares, err := s.lugaresLibres(ctx, &turno, fecha)
		if err != nil {
			return nil, err
		}
		if lugares > 0 {
			out = append(out, ports.TurnoDisponible{Turno: turno, Lugares: lugares})
		}
	}
	return out, nil
}

func (s *PaseLibreService) Reservar(ctx context.Context, alumnoID, turnoID string, fecha time.Time) (*domain.Reserva, error) {
	fecha = truncateToDay(fecha)

	alumno, err := s.users.FindByID(ctx, alumnoID)
	if err != nil {
		return nil, err
	}
	if !alumno.HasPaseLibre() {
		return nil, domain.ErrPaseLibreRequired
	}

	turno, err := s.turnos.FindByID(ctx, turnoID)
	if err != nil {
		return nil, err
	}
	if !turno.Activo {
		return nil, domain.ErrTurnoInactive
	}
	if int(fecha.Weekday()) != turno.DiaSemana {
		return nil, domain.ErrFechaFueraDeTurno
	}

	lugares, err := s.lugaresLibres(ctx, turno, fecha)
	if err != nil {
		return nil, err
	}
	if lugares <= 0 {
		return nil, domain.ErrTurnoFull
	}

	reserva := &domain.Reserva{
		TurnoID:   turnoID,
		AlumnoID:  alumnoID,
		Fecha:     fecha,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.reservas.Create(ctx, reserva)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("turno_id", turnoID).
		Str("alumno_id", alumnoID).
		Str("fecha", fecha.Format("2006-01-02")).
		Msg("pase libre reservado")

	return created, nil
}

func (s *PaseLibreService) MisReservas(ctx context.Context, alumnoID string) ([]domain.Reserva, error) {
	return s.reservas.ListByAlumno(ctx, alumnoID)
}

func (s *PaseLibreService) Cancelar(ctx context.Context, id, alumnoID string) error {
	reserva, err := s.reservas.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if reserva.AlumnoID != alumnoID {
		return domain.ErrForbidden
	}
	if err := s.reservas.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("reserva_id", id).Str("alumno_id", alumnoID).Msg("reserva cancelada")
	return nil
}

// lugaresLibres computes the open spots in a turno for a date: cupo minus
// fixed enrollments minus that date's reservations.
func (s *PaseLibreService) lugaresLibres(ctx context.Context, turno *domain.Turno, fecha time.Time) (int, error) {
	fijos, err := s.inscripciones.CountByTurno(ctx, turno.ID)
	if err != nil {
		return 0, err
	}
	reservados, err := s.reservas.CountByTurnoFecha(ctx, turno.ID, fecha)
	if err != nil {
		return 0, err
	}
	return turno.CupoMaximo - fijos - reservados, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
