package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// CatalogService implements the administrative CRUD over niveles, piletas
// and profesores.
type CatalogService struct {
	niveles    ports.NivelRepository
	piletas    ports.PiletaRepository
	profesores ports.ProfesorRepository
	log        zerolog.Logger
}

func NewCatalogService(
	niveles ports.NivelRepository,
	piletas ports.PiletaRepository,
	profesores ports.ProfesorRepository,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{niveles: niveles, piletas: piletas, profesores: profesores, log: log}
}

func (s *CatalogService) CreateNivel(ctx context.Context, n domain.Nivel) (*domain.Nivel, error) {
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	created, err := s.niveles.Create(ctx, &n)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("nivel_id", created.ID).Str("nombre", created.Nombre).Msg("nivel created")
	return created, nil
}

func (s *CatalogService) UpdateNivel(ctx context.Context, n domain.Nivel) (*domain.Nivel, error) {
	n.UpdatedAt = time.Now().UTC()
	return s.niveles.Update(ctx, &n)
}

func (s *CatalogService) DeleteNivel(ctx context.Context, id string) error {
	return s.niveles.Delete(ctx, id)
}

func (s *CatalogService) ListNiveles(ctx context.Context) ([]domain.Nivel, error) {
	return s.niveles.List(ctx)
}

func (s *CatalogService) CreatePileta(ctx context.Context, p domain.Pileta) (*domain.Pileta, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	created, err := s.piletas.Create(ctx, &p)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("pileta_id", created.ID).Str("nombre", created.Nombre).Msg("pileta created")
	return created, nil
}

func (s *CatalogService) UpdatePileta(ctx context.Context, p domain.Pileta) (*domain.Pileta, error) {
	p.UpdatedAt = time.Now().UTC()
	return s.piletas.Update(ctx, &p)
}

func (s *CatalogService) DeletePileta(ctx context.Context, id string) error {
	return s.piletas.Delete(ctx, id)
}

func (s *CatalogService) ListPiletas(ctx context.Context) ([]domain.Pileta, error) {
	return s.piletas.List(ctx)
}

func (s *CatalogService) CreateProfesor(ctx context.Context, p domain.Profesor) (*domain.Profesor, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	created, err := s.profesores.Create(ctx, &p)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("profesor_id", created.ID).Str("dni", created.DNI).Msg("profesor created")
	return created, nil
}

func (s *CatalogService) UpdateProfesor(ctx context.Context, p domain.Profesor) (*domain.Profesor, error) {
	p.UpdatedAt = time.Now().UTC()
	return s.profesores.Update(ctx, &p)
}

func (s *CatalogService) DeleteProfesor(ctx context.Context, id string) error {
	return s.profesores.Delete(ctx, id)
}

func (s *CatalogService) ListProfesores(ctx context.Context) ([]domain.Profesor, error) {
	return s.profesores.List(ctx)
}
