package domain

import (
	"errors"
	"time"
)

var (
	ErrTurnoNotFound   = errors.New("turno not found")
	ErrTurnoInactive   = errors.New("turno is inactive")
	ErrTurnoFull       = errors.New("turno has no free spots")
	ErrClaseNotFound   = errors.New("clase not found")
	ErrInvalidDateSpan = errors.New("invalid date range")
)

// Turno is a recurring weekly time slot: a weekday, a time window, a nivel,
// a profesor, a pileta and a capacity.
type Turno struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	DiaSemana  int       `json:"dia_semana" bson:"dia_semana"` // 0=domingo … 6=sábado, as time.Weekday
	HoraInicio string    `json:"hora_inicio" bson:"hora_inicio"`
	HoraFin    string    `json:"hora_fin" bson:"hora_fin"`
	NivelID    string    `json:"nivel_id" bson:"nivel_id"`
	ProfesorID string    `json:"profesor_id" bson:"profesor_id"`
	PiletaID   string    `json:"pileta_id" bson:"pileta_id"`
	CupoMaximo int       `json:"cupo_maximo" bson:"cupo_maximo"`
	Activo     bool      `json:"activo" bson:"activo"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Clase is a dated occurrence of a turno, materialized so asistencias can be
// taken against a concrete day.
type Clase struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TurnoID   string    `json:"turno_id" bson:"turno_id"`
	Fecha     time.Time `json:"fecha" bson:"fecha"` // midnight UTC of the class day
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ClaseDates returns the dates between desde and hasta (inclusive) that fall
// on the turno's weekday. Both bounds are truncated to midnight UTC.
func (t *Turno) ClaseDates(desde, hasta time.Time) ([]time.Time, error) {
	desde = midnightUTC(desde)
	hasta = midnightUTC(hasta)
	if hasta.Before(desde) {
		return nil, ErrInvalidDateSpan
	}

	// Advance to the first matching weekday.
	offset := (t.DiaSemana - int(desde.Weekday()) + 7) % 7
	first := desde.AddDate(0, 0, offset)

	var dates []time.Time
	for d := first; !d.After(hasta); d = d.AddDate(0, 0, 7) {
		dates = append(dates, d)
	}
	return dates, nil
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
