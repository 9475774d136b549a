package domain

import (
	"errors"
	"time"
)

var (
	ErrReservaNotFound   = errors.New("reserva not found")
	ErrAlreadyReserved   = errors.New("alumno already has a reservation for that date")
	ErrPaseLibreRequired = errors.New("pase libre required")
	ErrFechaFueraDeTurno = errors.New("fecha does not fall on the turno's weekday")
)

// Reserva is a single-day spot in a turno taken by a pase libre client.
// Regular clients hold fixed inscripciones; pase libre clients book day by
// day, one reservation per date.
type Reserva struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TurnoID   string    `json:"turno_id" bson:"turno_id"`
	AlumnoID  string    `json:"alumno_id" bson:"alumno_id"`
	Fecha     time.Time `json:"fecha" bson:"fecha"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
