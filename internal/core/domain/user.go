package domain

import (
	"errors"
	"time"
)

// Role classifies an authenticated actor. The wire values are the Spanish
// tipo_usuario strings the consoles already persist, so they are
// load-bearing and must not be renamed.
type Role string

const (
	RoleCoordinator Role = "coordinador"
	RoleSecretary   Role = "secretaria"
	RoleInstructor  Role = "profesor"
	RoleClient      Role = "cliente"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCoordinator, RoleSecretary, RoleInstructor, RoleClient:
		return true
	}
	return false
}

// ClientType distinguishes regular clients from pase libre holders, who are
// exempt from turno capacity limits.
type ClientType string

const (
	ClientTypeRegular   ClientType = "regular"
	ClientTypePaseLibre ClientType = "pase_libre"
)

// UserStatus tracks the lifecycle of an account. Self-registered accounts
// start pending until the secretariat approves them.
type UserStatus string

const (
	UserStatusPending UserStatus = "pendiente"
	UserStatusActive  UserStatus = "activo"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotActive      = errors.New("user not active")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password too short")
)

// MinPasswordLength applies to registration and password reset alike.
const MinPasswordLength = 6

// User models an authenticated actor. A cliente user is also the alumno
// referenced by inscripciones, cuotas and asistencias.
type User struct {
	ID           string     `json:"id"`
	Nombre       string     `json:"nombre"`
	Apellido     string     `json:"apellido"`
	DNI          string     `json:"dni"`
	Email        string     `json:"email,omitempty"`
	Telefono     string     `json:"telefono,omitempty"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"tipo_usuario"`
	TipoCliente  ClientType `json:"tipo_cliente,omitempty"`
	Status       UserStatus `json:"estado"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HasPaseLibre reports whether the user is a pase libre client.
func (u *User) HasPaseLibre() bool {
	return u.Role == RoleClient && u.TipoCliente == ClientTypePaseLibre
}
