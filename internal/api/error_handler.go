package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "credenciales inválidas"
	case errors.Is(err, domain.ErrInvalidResetToken):
		return http.StatusUnauthorized, "token de recuperación inválido o vencido"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "acceso denegado"
	case errors.Is(err, domain.ErrUserNotActive):
		return http.StatusForbidden, "la cuenta todavía no fue activada"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "usuario no encontrado"
	case errors.Is(err, domain.ErrNivelNotFound):
		return http.StatusNotFound, "nivel no encontrado"
	case errors.Is(err, domain.ErrPiletaNotFound):
		return http.StatusNotFound, "pileta no encontrada"
	case errors.Is(err, domain.ErrProfesorNotFound):
		return http.StatusNotFound, "profesor no encontrado"
	case errors.Is(err, domain.ErrTurnoNotFound):
		return http.StatusNotFound, "turno no encontrado"
	case errors.Is(err, domain.ErrClaseNotFound):
		return http.StatusNotFound, "clase no encontrada"
	case errors.Is(err, domain.ErrInscripcionNotFound):
		return http.StatusNotFound, "inscripción no encontrada"
	case errors.Is(err, domain.ErrCuotaNotFound):
		return http.StatusNotFound, "cuota no encontrada"
	case errors.Is(err, domain.ErrNotificacionNotFound):
		return http.StatusNotFound, "notificación no encontrada"
	case errors.Is(err, domain.ErrReservaNotFound):
		return http.StatusNotFound, "reserva no encontrada"
	case errors.Is(err, domain.ErrCambioNivelNotFound):
		return http.StatusNotFound, "cambio de nivel no encontrado"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "ya existe un usuario con ese DNI"
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return http.StatusConflict, "el alumno ya está inscripto en este turno"
	case errors.Is(err, domain.ErrCuotaAlreadyPaid):
		return http.StatusConflict, "la cuota ya fue pagada"
	case errors.Is(err, domain.ErrAlreadyReserved):
		return http.StatusConflict, "el alumno ya tiene una reserva para esa fecha"
	case errors.Is(err, domain.ErrCambioNivelPending):
		return http.StatusConflict, "el alumno ya tiene un cambio de nivel pendiente"
	case errors.Is(err, domain.ErrCambioNivelResolved):
		return http.StatusConflict, "el cambio de nivel ya fue resuelto"
	case errors.Is(err, domain.ErrPaseLibreRequired):
		return http.StatusForbidden, "la reserva requiere un pase libre"
	case errors.Is(err, domain.ErrTurnoFull):
		return http.StatusUnprocessableEntity, "el turno no tiene cupo disponible"
	case errors.Is(err, domain.ErrTurnoInactive):
		return http.StatusUnprocessableEntity, "el turno no está activo"
	case errors.Is(err, domain.ErrFechaFueraDeTurno):
		return http.StatusUnprocessableEntity, "la fecha no cae en el día del turno"
	case errors.Is(err, domain.ErrInvalidDateSpan):
		return http.StatusBadRequest, "rango de fechas inválido"
	case errors.Is(err, domain.ErrPasswordTooShort):
		return http.StatusBadRequest, fmt.Sprintf("la contraseña debe tener al menos %d caracteres", domain.MinPasswordLength)
	case errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest, "las contraseñas no coinciden"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
