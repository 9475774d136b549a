package domain

import (
	"errors"
	"time"
)

var (
	ErrCambioNivelNotFound = errors.New("cambio de nivel not found")
	ErrCambioNivelPending  = errors.New("alumno already has a pending cambio de nivel")
	ErrCambioNivelResolved = errors.New("cambio de nivel already resolved")
)

// CambioNivelEstado tracks the lifecycle of a level-change suggestion.
type CambioNivelEstado string

const (
	CambioPendiente CambioNivelEstado = "pendiente"
	CambioAprobado  CambioNivelEstado = "aprobado"
	CambioRechazado CambioNivelEstado = "rechazado"
)

// CambioNivel is a profesor's suggestion to move an alumno to another nivel,
// resolved (approved or rejected) by the administration.
type CambioNivel struct {
	ID              string            `json:"id" bson:"_id,omitempty"`
	AlumnoID        string            `json:"alumno_id" bson:"alumno_id"`
	ProfesorID      string            `json:"profesor_id" bson:"profesor_id"`
	NivelActualID   string            `json:"nivel_actual_id,omitempty" bson:"nivel_actual_id,omitempty"`
	NivelSugeridoID string            `json:"nivel_sugerido_id" bson:"nivel_sugerido_id"`
	Observaciones   string            `json:"observaciones,omitempty" bson:"observaciones,omitempty"`
	Estado          CambioNivelEstado `json:"estado" bson:"estado"`
	CreatedAt       time.Time         `json:"created_at" bson:"created_at"`
	ResolvedAt      *time.Time        `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
}
