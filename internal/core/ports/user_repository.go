package ports

import (
	"context"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// UserRepository defines persistence for user accounts (staff and alumnos).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByDNI(ctx context.Context, dni string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error
	// SearchAlumnos matches cliente users by nombre, apellido or DNI prefix.
	SearchAlumnos(ctx context.Context, query string, limit int) ([]domain.User, error)
	ListPending(ctx context.Context) ([]domain.User, error)
}
