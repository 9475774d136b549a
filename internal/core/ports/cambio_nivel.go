package ports

import (
	"context"
	"time"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// CambioNivelRepository persists level-change suggestions.
type CambioNivelRepository interface {
	Create(ctx context.Context, c *domain.CambioNivel) (*domain.CambioNivel, error)
	FindByID(ctx context.Context, id string) (*domain.CambioNivel, error)
	ListPendientes(ctx context.Context) ([]domain.CambioNivel, error)
	ExistsPendiente(ctx context.Context, alumnoID string) (bool, error)
	UpdateEstado(ctx context.Context, id string, estado domain.CambioNivelEstado, at time.Time) error
}

// SugerirCambioInput carries a profesor's level-change suggestion.
type SugerirCambioInput struct {
	AlumnoID        string
	ProfesorID      string
	NivelSugeridoID string
	Observaciones   string
}

// CambioNivelService implements the suggest / approve / reject flow.
type CambioNivelService interface {
	// Sugerir files a suggestion. An alumno can carry at most one pending
	// suggestion at a time.
	Sugerir(ctx context.Context, input SugerirCambioInput) (*domain.CambioNivel, error)
	ListPendientes(ctx context.Context) ([]domain.CambioNivel, error)
	// Aprobar and Rechazar resolve a pending suggestion; resolving twice
	// fails with domain.ErrCambioNivelResolved.
	Aprobar(ctx context.Context, id string) (*domain.CambioNivel, error)
	Rechazar(ctx context.Context, id string) (*domain.CambioNivel, error)
}
