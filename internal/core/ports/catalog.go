package ports

import (
	"context"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// NivelRepository persists teaching levels.
type NivelRepository interface {
	Create(ctx context.Context, n *domain.Nivel) (*domain.Nivel, error)
	Update(ctx context.Context, n *domain.Nivel) (*domain.Nivel, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Nivel, error)
	List(ctx context.Context) ([]domain.Nivel, error)
}

// PiletaRepository persists pools.
type PiletaRepository interface {
	Create(ctx context.Context, p *domain.Pileta) (*domain.Pileta, error)
	Update(ctx context.Context, p *domain.Pileta) (*domain.Pileta, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Pileta, error)
	List(ctx context.Context) ([]domain.Pileta, error)
}

// ProfesorRepository persists instructor staff records.
type ProfesorRepository interface {
	Create(ctx context.Context, p *domain.Profesor) (*domain.Profesor, error)
	Update(ctx context.Context, p *domain.Profesor) (*domain.Profesor, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Profesor, error)
	List(ctx context.Context) ([]domain.Profesor, error)
}

// CatalogService groups the administrative CRUD over niveles, piletas and
// profesores. The handlers are mechanical bindings over these operations.
type CatalogService interface {
	CreateNivel(ctx context.Context, n domain.Nivel) (*domain.Nivel, error)
	UpdateNivel(ctx context.Context, n domain.Nivel) (*domain.Nivel, error)
	DeleteNivel(ctx context.Context, id string) error
	ListNiveles(ctx context.Context) ([]domain.Nivel, error)

	CreatePileta(ctx context.Context, p domain.Pileta) (*domain.Pileta, error)
	UpdatePileta(ctx context.Context, p domain.Pileta) (*domain.Pileta, error)
	DeletePileta(ctx context.Context, id string) error
	ListPiletas(ctx context.Context) ([]domain.Pileta, error)

	CreateProfesor(ctx context.Context, p domain.Profesor) (*domain.Profesor, error)
	UpdateProfesor(ctx context.Context, p domain.Profesor) (*domain.Profesor, error)
	DeleteProfesor(ctx context.Context, id string) error
	ListProfesores(ctx context.Context) ([]domain.Profesor, error)
}
