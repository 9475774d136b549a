package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// DedupMarker abstracts the notification dedup store (Redis). It keeps the
// overdue-cuota scanner from re-notifying the same cuota on every pass.
type DedupMarker interface {
	IsMarked(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

type notificacionService struct {
	repo  ports.NotificacionRepository
	dedup DedupMarker
	log   zerolog.Logger
}

// NewNotificacionService returns a NotificacionService implementation.
func NewNotificacionService(repo ports.NotificacionRepository, dedup DedupMarker, log zerolog.Logger) ports.NotificacionService {
	return &notificacionService{repo: repo, dedup: dedup, log: log}
}

// Process persists one queued notification. Duplicates (same DedupKey within
// the dedup TTL) are silently skipped; a failing dedup check is logged and
// the notification delivered anyway, preferring a duplicate over a loss.
func (s *notificacionService) Process(ctx context.Context, input ports.NotificacionInput) error {
	if input.UserID == "" {
		return fmt.Errorf("process notificacion: missing user_id")
	}

	if input.DedupKey != "" {
		marked, err := s.dedup.IsMarked(ctx, input.DedupKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", input.DedupKey).Msg("notification dedup check failed, delivering anyway")
		} else if marked {
			s.log.Debug().Str("key", input.DedupKey).Msg("duplicate notification skipped")
			return nil
		}
	}

	tipo := input.Tipo
	if tipo == "" {
		tipo = domain.NotifGeneral
	}

	n := &domain.Notificacion{
		UserID:    input.UserID,
		Tipo:      tipo,
		Titulo:    input.Titulo,
		Mensaje:   input.Mensaje,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return fmt.Errorf("process notificacion: %w", err)
	}

	if input.DedupKey != "" {
		if err := s.dedup.Mark(ctx, input.DedupKey); err != nil {
			s.log.Warn().Err(err).Str("key", input.DedupKey).Msg("failed to set notification dedup key")
		}
	}

	s.log.Info().
		Str("user_id", input.UserID).
		Str("tipo", string(tipo)).
		Msg("notificacion delivered")

	return nil
}

func (s *notificacionService) ListByUser(ctx context.Context, userID string) ([]domain.Notificacion, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *notificacionService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificacionService) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *notificacionService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *notificacionService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *notificacionService) DeleteRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.DeleteRead(ctx, userID)
}
