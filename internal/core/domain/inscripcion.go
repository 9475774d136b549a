package domain

import (
	"errors"
	"time"
)

var (
	ErrInscripcionNotFound = errors.New("inscripcion not found")
	ErrAlreadyEnrolled     = errors.New("alumno already enrolled in turno")
)

// Inscripcion enrolls an alumno (a cliente user) in a turno.
type Inscripcion struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TurnoID   string    `json:"turno_id" bson:"turno_id"`
	AlumnoID  string    `json:"alumno_id" bson:"alumno_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
