package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/api/metrics"
	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// AsistenciaHandler exposes attendance registration for profesores and the
// monthly attendance views.
type AsistenciaHandler struct {
	service ports.AsistenciaService
}

func NewAsistenciaHandler(service ports.AsistenciaService) *AsistenciaHandler {
	return &AsistenciaHandler{service: service}
}

type asistenciaRowRequest struct {
	AlumnoID string `json:"alumno_id" validate:"required"`
	Presente bool   `json:"presente"`
	Estado   string `json:"estado"    validate:"omitempty,oneof=presente ausente justificada"`
}

type registrarAsistenciasRequest struct {
	Asistencias []asistenciaRowRequest `json:"asistencias" validate:"required,min=1,dive"`
}

type registrarAsistenciasResponse struct {
	Registradas int `json:"registradas"`
}

// Registrar handles POST /clases/:id/asistencias — bulk upsert for one
// clase. Re-sending a roster overwrites the previous records for the same
// clase.
//
// @Summary      Register attendance for a class
// @Tags         asistencias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                       true  "Clase ID"
// @Param        body  body      registrarAsistenciasRequest  true  "Attendance roster"
// @Success      200   {object}  registrarAsistenciasResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /clases/{id}/asistencias [post]
func (h *AsistenciaHandler) Registrar(c echo.Context) error {
	var req registrarAsistenciasRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rows := make([]ports.AsistenciaInput, 0, len(req.Asistencias))
	for _, r := range req.Asistencias {
		rows = append(rows, ports.AsistenciaInput{
			AlumnoID: r.AlumnoID,
			Presente: r.Presente,
			Estado:   domain.AsistenciaEstado(r.Estado),
		})
	}

	n, err := h.service.Registrar(c.Request().Context(), c.Param("id"), rows)
	if err != nil {
		return err
	}

	metrics.AsistenciasRegistradasTotal.Add(float64(n))
	return c.JSON(http.StatusOK, registrarAsistenciasResponse{Registradas: n})
}

// ListByTurnoMonth handles GET /turnos/:id/asistencias?mes=&anio=.
//
// @Summary      List attendance for a turno and month
// @Tags         asistencias
// @Produce      json
// @Security     BearerAuth
// @Param        id    path   string  true  "Turno ID"
// @Param        mes   query  int     true  "Month (1-12)"
// @Param        anio  query  int     true  "Year"
// @Success      200  {array}  domain.Asistencia
// @Failure      400  {object}  map[string]string
// @Router       /turnos/{id}/asistencias [get]
func (h *AsistenciaHandler) ListByTurnoMonth(c echo.Context) error {
	mes, err := strconv.Atoi(c.QueryParam("mes"))
	if err != nil || mes < 1 || mes > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "mes must be 1-12")
	}
	anio, err := strconv.Atoi(c.QueryParam("anio"))
	if err != nil || anio < 2000 {
		return echo.NewHTTPError(http.StatusBadRequest, "anio is invalid")
	}

	asistencias, err := h.service.ListByTurnoMonth(c.Request().Context(), c.Param("id"), mes, anio)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, asistencias)
}

// Inasistentes handles GET /alumnos/inasistentes — alumnos with repeated
// unjustified absences in the last weeks, most absences first.
//
// @Summary      List alumnos with repeated absences
// @Tags         asistencias
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.Inasistente
// @Router       /alumnos/inasistentes [get]
func (h *AsistenciaHandler) Inasistentes(c echo.Context) error {
	inasistentes, err := h.service.Inasistentes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inasistentes)
}
