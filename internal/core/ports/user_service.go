package ports

import (
	"context"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// CreateAlumnoInput carries an admin-created alumno account. Unlike
// self-registration, these accounts are active immediately.
type CreateAlumnoInput struct {
	Nombre      string
	Apellido    string
	DNI         string
	Email       string
	Telefono    string
	Password    string
	TipoCliente domain.ClientType
}

// UserService covers the administrative user operations: alumno creation,
// search, and approval of pending self-registrations.
type UserService interface {
	CreateAlumno(ctx context.Context, input CreateAlumnoInput) (*domain.User, error)
	SearchAlumnos(ctx context.Context, query string) ([]domain.User, error)
	ListPending(ctx context.Context) ([]domain.User, error)
	Approve(ctx context.Context, id string) (*domain.User, error)
}
