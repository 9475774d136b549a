package ports

import (
	"context"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// InscripcionRepository persists enrollments.
type InscripcionRepository interface {
	Create(ctx context.Context, i *domain.Inscripcion) (*domain.Inscripcion, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Inscripcion, error)
	ListByTurno(ctx context.Context, turnoID string) ([]domain.Inscripcion, error)
	ListByAlumno(ctx context.Context, alumnoID string) ([]domain.Inscripcion, error)
	CountByTurno(ctx context.Context, turnoID string) (int, error)
	Exists(ctx context.Context, turnoID, alumnoID string) (bool, error)
}

// InscripcionDetail pairs an enrollment with its alumno for admin listings.
type InscripcionDetail struct {
	Inscripcion domain.Inscripcion `json:"inscripcion"`
	Alumno      *domain.User       `json:"alumno,omitempty"`
}

// InscripcionService enforces capacity and pase libre rules on enrollments.
type InscripcionService interface {
	// Enroll enrolls the alumno in the turno. Capacity against cupo_maximo
	// is enforced unless the alumno holds pase libre; a duplicate enrollment
	// fails with ErrAlreadyEnrolled.
	Enroll(ctx context.Context, turnoID, alumnoID string) (*domain.Inscripcion, error)
	Unenroll(ctx context.Context, id string) error
	ListByTurno(ctx context.Context, turnoID string) ([]InscripcionDetail, error)
	ListByAlumno(ctx context.Context, alumnoID string) ([]domain.Inscripcion, error)
}
