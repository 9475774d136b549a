package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

var horaRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// TurnoService implements turno CRUD and clase generation. Referential
// checks against nivel, profesor and pileta run on create/update so a turno
// never points at a record the admin console cannot resolve.
type TurnoService struct {
	turnos     ports.TurnoRepository
	clases     ports.ClaseRepository
	niveles    ports.NivelRepository
	profesores ports.ProfesorRepository
	piletas    ports.PiletaRepository
	log        zerolog.Logger
}

func NewTurnoService(
	turnos ports.TurnoRepository,
	clases ports.ClaseRepository,
	niveles ports.NivelRepository,
	profesores ports.ProfesorRepository,
	piletas ports.PiletaRepository,
	log zerolog.Logger,
) *TurnoService {
	return &TurnoService{
		turnos:     turnos,
		clases:     clases,
		niveles:    niveles,
		profesores: profesores,
		piletas:    piletas,
		log:        log,
	}
}

func (s *TurnoService) Create(ctx context.Context, input ports.UpdateTurnoInput) (*domain.Turno, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	turno := &domain.Turno{
		DiaSemana:  input.DiaSemana,
		HoraInicio: input.HoraInicio,
		HoraFin:    input.HoraFin,
		NivelID:    input.NivelID,
		ProfesorID: input.ProfesorID,
		PiletaID:   input.PiletaID,
		CupoMaximo: input.CupoMaximo,
		Activo:     input.Activo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.turnos.Create(ctx, turno)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("turno_id", created.ID).
		Int("dia_semana", created.DiaSemana).
		Str("hora_inicio", created.HoraInicio).
		Msg("turno created")

	return created, nil
}

func (s *TurnoService) Update(ctx context.Context, id string, input ports.UpdateTurnoInput) (*domain.Turno, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	turno, err := s.turnos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	turno.DiaSemana = input.DiaSemana
	turno.HoraInicio = input.HoraInicio
	turno.HoraFin = input.HoraFin
	turno.NivelID = input.NivelID
	turno.ProfesorID = input.ProfesorID
	turno.PiletaID = input.PiletaID
	turno.CupoMaximo = input.CupoMaximo
	turno.Activo = input.Activo
	turno.UpdatedAt = time.Now().UTC()

	return s.turnos.Update(ctx, turno)
}

// Patch applies the partial updates the admin console issues (the activo
// toggle and cupo adjustments). A bare activo toggle goes through the
// targeted SetActivo update instead of a full document replace.
func (s *TurnoService) Patch(ctx context.Context, id string, input ports.PatchTurnoInput) (*domain.Turno, error) {
	if input.Activo != nil && input.CupoMaximo == nil {
		if err := s.turnos.SetActivo(ctx, id, *input.Activo); err != nil {
			return nil, err
		}
		return s.turnos.FindByID(ctx, id)
	}

	turno, err := s.turnos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Activo != nil {
		turno.Activo = *input.Activo
	}
	if input.CupoMaximo != nil {
		if *input.CupoMaximo <= 0 {
			return nil, fmt.Errorf("cupo_maximo must be positive")
		}
		turno.CupoMaximo = *input.CupoMaximo
	}
	turno.UpdatedAt = time.Now().UTC()

	return s.turnos.Update(ctx, turno)
}

func (s *TurnoService) Delete(ctx context.Context, id string) error {
	return s.turnos.Delete(ctx, id)
}

func (s *TurnoService) Get(ctx context.Context, id string) (*domain.Turno, error) {
	return s.turnos.FindByID(ctx, id)
}

func (s *TurnoService) List(ctx context.Context, filter ports.TurnoFilter) ([]domain.Turno, error) {
	return s.turnos.List(ctx, filter)
}

// PorNiveles returns every nivel with its active turnos, in nivel order.
// Niveles without turnos still appear so the console can render empty tabs.
func (s *TurnoService) PorNiveles(ctx context.Context) ([]ports.NivelTurnos, error) {
	niveles, err := s.niveles.List(ctx)
	if err != nil {
		return nil, err
	}
	turnos, err := s.turnos.List(ctx, ports.TurnoFilter{SoloActivo: true})
	if err != nil {
		return nil, err
	}

	porNivel := make(map[string][]domain.Turno, len(niveles))
	for _, t := range turnos {
		porNivel[t.NivelID] = append(porNivel[t.NivelID], t)
	}

	grupos := make([]ports.NivelTurnos, 0, len(niveles))
	for _, n := range niveles {
		grupos = append(grupos, ports.NivelTurnos{Nivel: n, Turnos: porNivel[n.ID]})
	}
	return grupos, nil
}

// GenerarClases materializes the turno's class dates over the span. Dates
// that already have a clase are skipped, so regenerating a period is safe.
func (s *TurnoService) GenerarClases(ctx context.Context, input ports.GenerarClasesInput) (int, error) {
	turno, err := s.turnos.FindByID(ctx, input.TurnoID)
	if err != nil {
		return 0, err
	}
	if !turno.Activo {
		return 0, domain.ErrTurnoInactive
	}

	dates, err := turno.ClaseDates(input.Desde, input.Hasta)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	clases := make([]domain.Clase, 0, len(dates))
	for _, d := range dates {
		clases = append(clases, domain.Clase{TurnoID: turno.ID, Fecha: d, CreatedAt: now})
	}

	created, err := s.clases.InsertMissing(ctx, clases)
	if err != nil {
		return 0, err
	}

	s.log.Info().
		Str("turno_id", turno.ID).
		Int("generated", created).
		Int("span_dates", len(dates)).
		Msg("clases generated")

	return created, nil
}

func (s *TurnoService) ListClases(ctx context.Context, turnoID string) ([]domain.Clase, error) {
	if _, err := s.turnos.FindByID(ctx, turnoID); err != nil {
		return nil, err
	}
	return s.clases.ListByTurno(ctx, turnoID)
}

func (s *TurnoService) validate(ctx context.Context, input ports.UpdateTurnoInput) error {
	if input.DiaSemana < 0 || input.DiaSemana > 6 {
		return fmt.Errorf("dia_semana out of range: %d", input.DiaSemana)
	}
	if !horaRe.MatchString(input.HoraInicio) || !horaRe.MatchString(input.HoraFin) {
		return fmt.Errorf("hora must be HH:MM")
	}
	if input.HoraFin <= input.HoraInicio {
		return fmt.Errorf("hora_fin must be after hora_inicio")
	}
	if input.CupoMaximo <= 0 {
		return fmt.Errorf("cupo_maximo must be positive")
	}

	if _, err := s.niveles.FindByID(ctx, input.NivelID); err != nil {
		return err
	}
	if _, err := s.profesores.FindByID(ctx, input.ProfesorID); err != nil {
		return err
	}
	pileta, err := s.piletas.FindByID(ctx, input.PiletaID)
	if err != nil {
		return err
	}
	if !pileta.Activa {
		return fmt.Errorf("pileta %s is inactive", pileta.ID)
	}
	return nil
}
