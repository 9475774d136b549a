package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// CambioNivelService implements the level-change flow: a profesor suggests,
// the administration approves or rejects. One pending suggestion per alumno.
type CambioNivelService struct {
	cambios ports.CambioNivelRepository
	users   ports.UserRepository
	niveles ports.NivelRepository
	log     zerolog.Logger
}

func NewCambioNivelService(
	cambios ports.CambioNivelRepository,
	users ports.UserRepository,
	niveles ports.NivelRepository,
	log zerolog.Logger,
) *CambioNivelService {
	return &CambioNivelService{cambios: cambios, users: users, niveles: niveles, log: log}
}

func (s *CambioNivelService) Sugerir(ctx context.Context, input ports.SugerirCambioInput) (*domain.CambioNivel, error) {
	alumno, err := s.users.FindByID(ctx, input.AlumnoID)
	if err != nil {
		return nil, err
	}
	if alumno.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}
	if _, err := s.niveles.FindByID(ctx, input.NivelSugeridoID); err != nil {
		return nil, err
	}

	pending, err := s.cambios.ExistsPendiente(ctx, input.AlumnoID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.ErrCambioNivelPending
	}

	cambio := &domain.CambioNivel{
		AlumnoID:        input.AlumnoID,
		ProfesorID:      input.ProfesorID,
		NivelSugeridoID: input.NivelSugeridoID,
		Observaciones:   input.Observaciones,
		Estado:          domain.CambioPendiente,
		CreatedAt:       time.Now().UTC(),
	}
	created, err := s.cambios.Create(ctx, cambio)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("alumno_id", input.AlumnoID).
		Str("nivel_sugerido_id", input.NivelSugeridoID).
		Msg("cambio de nivel sugerido")

	return created, nil
}

func (s *CambioNivelService) ListPendientes(ctx context.Context) ([]domain.CambioNivel, error) {
	return s.cambios.ListPendientes(ctx)
}

func (s *CambioNivelService) Aprobar(ctx context.Context, id string) (*domain.CambioNivel, error) {
	return s.resolve(ctx, id, domain.CambioAprobado)
}

func (s *CambioNivelService) Rechazar(ctx context.Context, id string) (*domain.CambioNivel, error) {
	return s.resolve(ctx, id, domain.CambioRechazado)
}

func (s *CambioNivelService) resolve(ctx context.Context, id string, estado domain.CambioNivelEstado) (*domain.CambioNivel, error) {
	cambio, err := s.cambios.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cambio.Estado != domain.CambioPendiente {
		return nil, domain.ErrCambioNivelResolved
	}

	now := time.Now().UTC()
	if err := s.cambios.UpdateEstado(ctx, id, estado, now); err != nil {
		return nil, err
	}
	cambio.Estado = estado
	cambio.ResolvedAt = &now

	s.log.Info().
		Str("cambio_id", id).
		Str("estado", string(estado)).
		Msg("cambio de nivel resuelto")

	return cambio, nil
}
