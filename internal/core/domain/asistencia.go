package domain

import "time"

// AsistenciaEstado qualifies an attendance record beyond the boolean.
type AsistenciaEstado string

const (
	AsistenciaPresente    AsistenciaEstado = "presente"
	AsistenciaAusente     AsistenciaEstado = "ausente"
	AsistenciaJustificada AsistenciaEstado = "justificada"
)

// Asistencia records whether an alumno attended a given clase. One record per
// (clase, alumno); re-taking attendance overwrites the previous record.
type Asistencia struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	ClaseID   string           `json:"clase_id" bson:"clase_id"`
	TurnoID   string           `json:"turno_id" bson:"turno_id"`
	AlumnoID  string           `json:"alumno_id" bson:"alumno_id"`
	Fecha     time.Time        `json:"fecha" bson:"fecha"`
	Presente  bool             `json:"presente" bson:"presente"`
	Estado    AsistenciaEstado `json:"estado" bson:"estado"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}
