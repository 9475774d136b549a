package domain

import (
	"errors"
	"time"
)

var ErrNotificacionNotFound = errors.New("notificacion not found")

// NotificacionTipo labels the origin of a notification.
type NotificacionTipo string

const (
	NotifCuotaVencida NotificacionTipo = "cuota_vencida"
	NotifInscripcion  NotificacionTipo = "inscripcion"
	NotifGeneral      NotificacionTipo = "general"
)

// Notificacion is an in-app message addressed to a single user.
type Notificacion struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	UserID    string           `json:"user_id" bson:"user_id"`
	Tipo      NotificacionTipo `json:"tipo" bson:"tipo"`
	Titulo    string           `json:"titulo" bson:"titulo"`
	Mensaje   string           `json:"mensaje" bson:"mensaje"`
	Leida     bool             `json:"leida" bson:"leida"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}
