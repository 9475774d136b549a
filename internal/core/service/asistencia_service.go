package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// inasistentesVentana and inasistentesUmbral bound the absence report: alumnos
// with at least the umbral of ausencias inside the trailing window are flagged.
const (
	inasistentesVentana = 30 * 24 * time.Hour
	inasistentesUmbral  = 3
)

// AsistenciaService records and queries attendance per clase.
type AsistenciaService struct {
	asistencias ports.AsistenciaRepository
	clases      ports.ClaseRepository
	users       ports.UserRepository
	log         zerolog.Logger
}

func NewAsistenciaService(
	asistencias ports.AsistenciaRepository,
	clases ports.ClaseRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *AsistenciaService {
	return &AsistenciaService{asistencias: asistencias, clases: clases, users: users, log: log}
}

// Registrar applies a bulk attendance submission against a clase. Each row
// upserts over any prior record for the same alumno, so a profesor can
// re-take attendance and correct mistakes.
func (s *AsistenciaService) Registrar(ctx context.Context, claseID string, rows []ports.AsistenciaInput) (int, error) {
	clase, err := s.clases.FindByID(ctx, claseID)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	applied := 0
	for _, row := range rows {
		if row.AlumnoID == "" {
			return applied, fmt.Errorf("asistencia row missing alumno_id")
		}
		estado := row.Estado
		if estado == "" {
			if row.Presente {
				estado = domain.AsistenciaPresente
			} else {
				estado = domain.AsistenciaAusente
			}
		}

		a := &domain.Asistencia{
			ClaseID:   clase.ID,
			TurnoID:   clase.TurnoID,
			AlumnoID:  row.AlumnoID,
			Fecha:     clase.Fecha,
			Presente:  row.Presente,
			Estado:    estado,
			CreatedAt: now,
		}
		if err := s.asistencias.Upsert(ctx, a); err != nil {
			return applied, fmt.Errorf("upsert asistencia: %w", err)
		}
		applied++
	}

	s.log.Info().
		Str("clase_id", claseID).
		Str("turno_id", clase.TurnoID).
		Int("rows", applied).
		Msg("asistencias registered")

	return applied, nil
}

func (s *AsistenciaService) ListByTurnoMonth(ctx context.Context, turnoID string, mes, anio int) ([]domain.Asistencia, error) {
	if mes < 1 || mes > 12 {
		return nil, fmt.Errorf("mes out of range: %d", mes)
	}
	return s.asistencias.ListByTurnoMonth(ctx, turnoID, mes, anio)
}

// Inasistentes reports alumnos that accumulated repeated ausencias in the
// trailing window, most absences first. Alumnos whose account vanished since
// the absence was recorded are skipped.
func (s *AsistenciaService) Inasistentes(ctx context.Context) ([]ports.Inasistente, error) {
	since := time.Now().UTC().Add(-inasistentesVentana)
	counts, err := s.asistencias.CountAusencias(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("count ausencias: %w", err)
	}

	inasistentes := make([]ports.Inasistente, 0, len(counts))
	for alumnoID, ausencias := range counts {
		if ausencias < inasistentesUmbral {
			continue
		}
		alumno, err := s.users.FindByID(ctx, alumnoID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		inasistentes = append(inasistentes, ports.Inasistente{
			Alumno:    *alumno,
			Ausencias: ausencias,
		})
	}

	sort.Slice(inasistentes, func(i, j int) bool {
		if inasistentes[i].Ausencias != inasistentes[j].Ausencias {
			return inasistentes[i].Ausencias > inasistentes[j].Ausencias
		}
		return inasistentes[i].Alumno.Apellido < inasistentes[j].Alumno.Apellido
	})
	return inasistentes, nil
}
