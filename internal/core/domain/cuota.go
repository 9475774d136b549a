package domain

import (
	"errors"
	"time"
)

var (
	ErrCuotaNotFound    = errors.New("cuota not found")
	ErrCuotaAlreadyPaid = errors.New("cuota already paid")
)

// Cuota is a periodic due assigned to an alumno. Payment itself happens at
// the front desk; the system only records the obligation and its settlement.
type Cuota struct {
	ID               string     `json:"id" bson:"_id,omitempty"`
	AlumnoID         string     `json:"alumno_id" bson:"alumno_id"`
	Monto            float64    `json:"monto" bson:"monto"`
	FechaVencimiento time.Time  `json:"fecha_vencimiento" bson:"fecha_vencimiento"`
	Observaciones    string     `json:"observaciones,omitempty" bson:"observaciones,omitempty"`
	Pagada           bool       `json:"pagada" bson:"pagada"`
	PagadaAt         *time.Time `json:"pagada_at,omitempty" bson:"pagada_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at" bson:"created_at"`
}

// Vencida reports whether the cuota is unpaid and past due at the given time.
func (c *Cuota) Vencida(now time.Time) bool {
	return !c.Pagada && now.After(c.FechaVencimiento)
}
