package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/api/metrics"
	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// InscripcionHandler exposes enrollment operations for both the secretariat
// and self-service clientes.
type InscripcionHandler struct {
	service ports.InscripcionService
}

func NewInscripcionHandler(service ports.InscripcionService) *InscripcionHandler {
	return &InscripcionHandler{service: service}
}

type enrollRequest struct {
	TurnoID  string `json:"turno_id"  validate:"required"`
	AlumnoID string `json:"alumno_id"`
}

// Create handles POST /inscripciones. Admins enroll any alumno; a cliente is
// always enrolled as themselves, whatever alumno_id the payload carries.
//
// @Summary      Enroll an alumno in a turno
// @Tags         inscripciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      enrollRequest  true  "Enrollment"
// @Success      201   {object}  domain.Inscripcion
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /inscripciones [post]
func (h *InscripcionHandler) Create(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	alumnoID := req.AlumnoID
	if role == domain.RoleClient {
		alumnoID = userID
	}
	if alumnoID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "alumno_id is required")
	}

	inscripcion, err := h.service.Enroll(c.Request().Context(), req.TurnoID, alumnoID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTurnoFull):
			metrics.InscripcionesTotal.WithLabelValues("full").Inc()
		case errors.Is(err, domain.ErrAlreadyEnrolled):
			metrics.InscripcionesTotal.WithLabelValues("duplicate").Inc()
		default:
			metrics.InscripcionesTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.InscripcionesTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, inscripcion)
}

// Delete handles DELETE /inscripciones/:id. A cliente may only remove their
// own enrollment; admins may remove any.
//
// @Summary      Remove an enrollment
// @Tags         inscripciones
// @Security     BearerAuth
// @Param        id  path  string  true  "Inscripcion ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /inscripciones/{id} [delete]
func (h *InscripcionHandler) Delete(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if role == domain.RoleClient {
		owned, err := h.ownsInscripcion(c, userID, id)
		if err != nil {
			return err
		}
		if !owned {
			return domain.ErrForbidden
		}
	}

	if err := h.service.Unenroll(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListByTurno handles GET /turnos/:id/inscripciones — the roster view with
// resolved alumnos.
//
// @Summary      List enrollments for a turno
// @Tags         inscripciones
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Turno ID"
// @Success      200  {array}  ports.InscripcionDetail
// @Router       /turnos/{id}/inscripciones [get]
func (h *InscripcionHandler) ListByTurno(c echo.Context) error {
	detalles, err := h.service.ListByTurno(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detalles)
}

// ListMine handles GET /mis-inscripciones for the authenticated cliente.
//
// @Summary      List the authenticated cliente's enrollments
// @Tags         inscripciones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Inscripcion
// @Router       /mis-inscripciones [get]
func (h *InscripcionHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	inscripciones, err := h.service.ListByAlumno(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inscripciones)
}

func (h *InscripcionHandler) ownsInscripcion(c echo.Context, alumnoID, inscripcionID string) (bool, error) {
	inscripciones, err := h.service.ListByAlumno(c.Request().Context(), alumnoID)
	if err != nil {
		return false, err
	}
	for _, i := range inscripciones {
		if i.ID == inscripcionID {
			return true, nil
		}
	}
	return false, nil
}
