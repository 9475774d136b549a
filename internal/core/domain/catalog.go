package domain

import (
	"errors"
	"time"
)

var (
	ErrNivelNotFound    = errors.New("nivel not found")
	ErrPiletaNotFound   = errors.New("pileta not found")
	ErrProfesorNotFound = errors.New("profesor not found")
)

// Nivel is a teaching level (e.g. "Iniciación", "Perfeccionamiento").
// Orden controls display ordering in the consoles.
type Nivel struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Nombre      string    `json:"nombre" bson:"nombre"`
	Descripcion string    `json:"descripcion,omitempty" bson:"descripcion,omitempty"`
	Orden       int       `json:"orden" bson:"orden"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Pileta is a physical pool. Inactive piletas keep their history but cannot
// receive new turnos.
type Pileta struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Nombre      string    `json:"nombre" bson:"nombre"`
	Descripcion string    `json:"descripcion,omitempty" bson:"descripcion,omitempty"`
	Activa      bool      `json:"activa" bson:"activa"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Profesor is an instructor assignable to turnos. Profesores managed here are
// staff records; the matching login account (role profesor) is separate.
type Profesor struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Nombre    string    `json:"nombre" bson:"nombre"`
	Apellido  string    `json:"apellido" bson:"apellido"`
	DNI       string    `json:"dni" bson:"dni"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Telefono  string    `json:"telefono,omitempty" bson:"telefono,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
