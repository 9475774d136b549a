package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// InscripcionService enforces the enrollment rules: the turno must be
// active, the alumno must not already be enrolled, and the cupo_maximo
// capacity applies to everyone except pase libre clients.
type InscripcionService struct {
	inscripciones ports.InscripcionRepository
	turnos        ports.TurnoRepository
	users         ports.UserRepository
	log           zerolog.Logger
}

func NewInscripcionService(
	inscripciones ports.InscripcionRepository,
	turnos ports.TurnoRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *InscripcionService {
	return &InscripcionService{
		inscripciones: inscripciones,
		turnos:        turnos,
		users:         users,
		log:           log,
	}
}

func (s *InscripcionService) Enroll(ctx context.Context, turnoID, alumnoID string) (*domain.Inscripcion, error) {
	turno, err := s.turnos.FindByID(ctx, turnoID)
	if err != nil {
		return nil, err
	}
	if !turno.Activo {
		return nil, domain.ErrTurnoInactive
	}

	alumno, err := s.users.FindByID(ctx, alumnoID)
	if err != nil {
		return nil, err
	}
	if alumno.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}

	enrolled, err := s.inscripciones.Exists(ctx, turnoID, alumnoID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, domain.ErrAlreadyEnrolled
	}

	// Pase libre clients bypass the capacity check; they reserve day by day
	// and do not consume a fixed spot.
	if !alumno.HasPaseLibre() {
		count, err := s.inscripciones.CountByTurno(ctx, turnoID)
		if err != nil {
			return nil, err
		}
		if count >= turno.CupoMaximo {
			return nil, domain.ErrTurnoFull
		}
	}

	inscripcion := &domain.Inscripcion{
		TurnoID:   turnoID,
		AlumnoID:  alumnoID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.inscripciones.Create(ctx, inscripcion)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("turno_id", turnoID).
		Str("alumno_id", alumnoID).
		Msg("alumno enrolled")

	return created, nil
}

func (s *InscripcionService) Unenroll(ctx context.Context, id string) error {
	if err := s.inscripciones.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("inscripcion_id", id).Msg("inscripcion removed")
	return nil
}

// ListByTurno returns the turno's enrollments with each alumno resolved.
// A missing alumno record does not fail the listing; the row is returned
// without the embedded user.
func (s *InscripcionService) ListByTurno(ctx context.Context, turnoID string) ([]ports.InscripcionDetail, error) {
	if _, err := s.turnos.FindByID(ctx, turnoID); err != nil {
		return nil, err
	}

	inscripciones, err := s.inscripciones.ListByTurno(ctx, turnoID)
	if err != nil {
		return nil, err
	}

	details := make([]ports.InscripcionDetail, 0, len(inscripciones))
	for _, ins := range inscripciones {
		detail := ports.InscripcionDetail{Inscripcion: ins}
		if alumno, err := s.users.FindByID(ctx, ins.AlumnoID); err == nil {
			detail.Alumno = alumno
		} else {
			s.log.Warn().Str("alumno_id", ins.AlumnoID).Msg("inscripcion references missing alumno")
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *InscripcionService) ListByAlumno(ctx context.Context, alumnoID string) ([]domain.Inscripcion, error) {
	return s.inscripciones.ListByAlumno(ctx, alumnoID)
}
