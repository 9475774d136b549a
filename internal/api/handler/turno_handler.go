package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// TurnoHandler exposes weekly slot administration and class generation.
type TurnoHandler struct {
	service ports.TurnoService
}

func NewTurnoHandler(service ports.TurnoService) *TurnoHandler {
	return &TurnoHandler{service: service}
}

// List handles GET /turnos with optional dia, nivel_id, profesor_id and
// activo query filters.
//
// @Summary      List weekly slots
// @Tags         turnos
// @Produce      json
// @Security     BearerAuth
// @Param        dia          query  string  false  "Comma-separated weekdays (0=domingo … 6=sábado)"
// @Param        nivel_id     query  string  false  "Filter by nivel"
// @Param        profesor_id  query  string  false  "Filter by profesor"
// @Param        activo       query  bool    false  "Only active slots"
// @Success      200  {array}  domain.Turno
// @Router       /turnos [get]
func (h *TurnoHandler) List(c echo.Context) error {
	filter := ports.TurnoFilter{
		NivelID:    c.QueryParam("nivel_id"),
		ProfesorID: c.QueryParam("profesor_id"),
		SoloActivo: c.QueryParam("activo") == "true",
	}
	if dias := c.QueryParam("dia"); dias != "" {
		for _, part := range strings.Split(dias, ",") {
			d, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || d < 0 || d > 6 {
				return echo.NewHTTPError(http.StatusBadRequest, "dia must be 0-6")
			}
			filter.Dias = append(filter.Dias, d)
		}
	}

	turnos, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, turnos)
}

// PorNiveles handles GET /turnos/por-niveles — active slots grouped per
// teaching level, for the cartelera view.
//
// @Summary      Active slots grouped by nivel
// @Tags         turnos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.NivelTurnos
// @Router       /turnos/por-niveles [get]
func (h *TurnoHandler) PorNiveles(c echo.Context) error {
	grupos, err := h.service.PorNiveles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, grupos)
}

// Get handles GET /turnos/:id.
//
// @Summary      Get a weekly slot
// @Tags         turnos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Turno ID"
// @Success      200  {object}  domain.Turno
// @Failure      404  {object}  map[string]string
// @Router       /turnos/{id} [get]
func (h *TurnoHandler) Get(c echo.Context) error {
	turno, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, turno)
}

// Create handles POST /turnos.
//
// @Summary      Create a weekly slot
// @Tags         turnos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      turnoRequest  true  "Slot details"
// @Success      201   {object}  domain.Turno
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /turnos [post]
func (h *TurnoHandler) Create(c echo.Context) error {
	var req turnoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	turno, err := h.service.Create(c.Request().Context(), toTurnoInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, turno)
}

// Update handles PUT /turnos/:id.
//
// @Summary      Update a weekly slot
// @Tags         turnos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Turno ID"
// @Param        body  body      turnoRequest  true  "Slot details"
// @Success      200   {object}  domain.Turno
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /turnos/{id} [put]
func (h *TurnoHandler) Update(c echo.Context) error {
	var req turnoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	turno, err := h.service.Update(c.Request().Context(), c.Param("id"), toTurnoInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, turno)
}

// Patch handles PATCH /turnos/:id — partial update for the activo toggle and
// capacity adjustments.
//
// @Summary      Partially update a weekly slot
// @Tags         turnos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Turno ID"
// @Param        body  body      patchTurnoRequest  true  "Fields to change"
// @Success      200   {object}  domain.Turno
// @Failure      404   {object}  map[string]string
// @Router       /turnos/{id} [patch]
func (h *TurnoHandler) Patch(c echo.Context) error {
	var req patchTurnoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	turno, err := h.service.Patch(c.Request().Context(), c.Param("id"), ports.PatchTurnoInput{
		Activo:     req.Activo,
		CupoMaximo: req.CupoMaximo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, turno)
}

// Delete handles DELETE /turnos/:id.
//
// @Summary      Delete a weekly slot
// @Tags         turnos
// @Security     BearerAuth
// @Param        id  path  string  true  "Turno ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /turnos/{id} [delete]
func (h *TurnoHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GenerarClases handles POST /turnos/:id/generar-clases — materializes the
// slot's dated classes over a period. Re-running the same span is idempotent.
//
// @Summary      Generate dated classes for a slot
// @Tags         turnos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Turno ID"
// @Param        body  body      generarClasesRequest  true  "Date span (YYYY-MM-DD)"
// @Success      200   {object}  generarClasesResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /turnos/{id}/generar-clases [post]
func (h *TurnoHandler) GenerarClases(c echo.Context) error {
	var req generarClasesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	desde, _ := time.Parse("2006-01-02", req.Desde)
	hasta, _ := time.Parse("2006-01-02", req.Hasta)

	creadas, err := h.service.GenerarClases(c.Request().Context(), ports.GenerarClasesInput{
		TurnoID: c.Param("id"),
		Desde:   desde,
		Hasta:   hasta,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, generarClasesResponse{Creadas: creadas})
}

// ListClases handles GET /turnos/:id/clases.
//
// @Summary      List generated classes for a slot
// @Tags         turnos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Turno ID"
// @Success      200  {array}  domain.Clase
// @Router       /turnos/{id}/clases [get]
func (h *TurnoHandler) ListClases(c echo.Context) error {
	clases, err := h.service.ListClases(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clases)
}

// toTurnoInput maps the HTTP request to the service DTO.
func toTurnoInput(r turnoRequest) ports.UpdateTurnoInput {
	return ports.UpdateTurnoInput{
		DiaSemana:  r.DiaSemana,
		HoraInicio: r.HoraInicio,
		HoraFin:    r.HoraFin,
		NivelID:    r.NivelID,
		ProfesorID: r.ProfesorID,
		PiletaID:   r.PiletaID,
		CupoMaximo: r.CupoMaximo,
		Activo:     r.Activo,
	}
}
