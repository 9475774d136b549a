package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// PaseLibreHandler exposes day-by-day booking for pase libre clientes. All
// endpoints act on behalf of the authenticated user.
type PaseLibreHandler struct {
	service ports.PaseLibreService
}

func NewPaseLibreHandler(service ports.PaseLibreService) *PaseLibreHandler {
	return &PaseLibreHandler{service: service}
}

type reservarRequest struct {
	TurnoID string `json:"turno_id" validate:"required"`
	Fecha   string `json:"fecha"    validate:"required,datetime=2006-01-02"`
}

// Disponibles handles GET /pases-libre/disponibles?fecha=YYYY-MM-DD.
//
// @Summary      Bookable slots for a date
// @Tags         pases-libre
// @Produce      json
// @Security     BearerAuth
// @Param        fecha  query  string  true  "Date (YYYY-MM-DD)"
// @Success      200  {array}  ports.TurnoDisponible
// @Failure      400  {object}  map[string]string
// @Router       /pases-libre/disponibles [get]
func (h *PaseLibreHandler) Disponibles(c echo.Context) error {
	fecha, err := time.Parse("2006-01-02", c.QueryParam("fecha"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "fecha must be YYYY-MM-DD")
	}

	disponibles, err := h.service.Disponibles(c.Request().Context(), fecha)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, disponibles)
}

// Reservar handles POST /pases-libre — books a spot for the authenticated
// cliente on a single date.
//
// @Summary      Reserve a spot for a date
// @Tags         pases-libre
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reservarRequest  true  "Reservation"
// @Success      201   {object}  domain.Reserva
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /pases-libre [post]
func (h *PaseLibreHandler) Reservar(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req reservarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fecha, _ := time.Parse("2006-01-02", req.Fecha)

	reserva, err := h.service.Reservar(c.Request().Context(), userID, req.TurnoID, fecha)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reserva)
}

// MisReservas handles GET /pases-libre/mis-reservas.
//
// @Summary      List the authenticated cliente's reservations
// @Tags         pases-libre
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Reserva
// @Router       /pases-libre/mis-reservas [get]
func (h *PaseLibreHandler) MisReservas(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	reservas, err := h.service.MisReservas(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservas)
}

// Cancelar handles DELETE /pases-libre/:id — only the owner may cancel.
//
// @Summary      Cancel a reservation
// @Tags         pases-libre
// @Security     BearerAuth
// @Param        id  path  string  true  "Reserva ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /pases-libre/{id} [delete]
func (h *PaseLibreHandler) Cancelar(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Cancelar(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
