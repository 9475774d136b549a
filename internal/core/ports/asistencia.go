package ports

import (
	"context"
	"time"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// AsistenciaRepository persists attendance records.
type AsistenciaRepository interface {
	// Upsert replaces any prior record for the same (clase, alumno).
	Upsert(ctx context.Context, a *domain.Asistencia) error
	ListByTurnoMonth(ctx context.Context, turnoID string, mes, anio int) ([]domain.Asistencia, error)
	// CountAusencias returns, per alumno, how many clases since the given
	// date were recorded as ausente.
	CountAusencias(ctx context.Context, since time.Time) (map[string]int, error)
}

// AsistenciaInput is one row of a bulk attendance submission.
type AsistenciaInput struct {
	AlumnoID string
	Presente bool
	Estado   domain.AsistenciaEstado
}

// Inasistente is an alumno flagged by the absence report.
type Inasistente struct {
	Alumno    domain.User `json:"alumno"`
	Ausencias int         `json:"ausencias"`
}

// AsistenciaService records and queries attendance.
type AsistenciaService interface {
	// Registrar records attendance for a clase in bulk. Rows are applied
	// independently; the first persistence failure aborts the remainder.
	Registrar(ctx context.Context, claseID string, rows []AsistenciaInput) (int, error)
	ListByTurnoMonth(ctx context.Context, turnoID string, mes, anio int) ([]domain.Asistencia, error)
	// Inasistentes reports alumnos with repeated recent absences.
	Inasistentes(ctx context.Context) ([]Inasistente, error)
}
