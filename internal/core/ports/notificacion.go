package ports

import (
	"context"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// NotificacionRepository persists in-app notifications.
type NotificacionRepository interface {
	Insert(ctx context.Context, n *domain.Notificacion) error
	ListByUser(ctx context.Context, userID string) ([]domain.Notificacion, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id, userID string) error
	DeleteRead(ctx context.Context, userID string) (int64, error)
}

// NotificacionInput is the DTO handed to the dispatcher workers.
type NotificacionInput struct {
	UserID  string
	Tipo    domain.NotificacionTipo
	Titulo  string
	Mensaje string
	// DedupKey, when non-empty, suppresses re-delivery of the same
	// notification within the dedup TTL.
	DedupKey string
}

// NotificacionService processes queued notifications and serves user queries.
type NotificacionService interface {
	Process(ctx context.Context, input NotificacionInput) error
	ListByUser(ctx context.Context, userID string) ([]domain.Notificacion, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id, userID string) error
	DeleteRead(ctx context.Context, userID string) (int64, error)
}
