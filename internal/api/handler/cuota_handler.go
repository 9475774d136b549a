package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// CuotaHandler exposes dues administration and the cliente's own dues view.
type CuotaHandler struct {
	service ports.CuotaService
}

func NewCuotaHandler(service ports.CuotaService) *CuotaHandler {
	return &CuotaHandler{service: service}
}

type createCuotaRequest struct {
	AlumnoID         string  `json:"alumno_id"         validate:"required"`
	Monto            float64 `json:"monto"             validate:"gt=0"`
	FechaVencimiento string  `json:"fecha_vencimiento" validate:"required,datetime=2006-01-02"`
	Observaciones    string  `json:"observaciones"`
}

// List handles GET /cuotas with optional alumno_id and impagas filters.
//
// @Summary      List dues
// @Tags         cuotas
// @Produce      json
// @Security     BearerAuth
// @Param        alumno_id  query  string  false  "Filter by alumno"
// @Param        impagas    query  bool    false  "Only unpaid dues"
// @Success      200  {array}  domain.Cuota
// @Router       /cuotas [get]
func (h *CuotaHandler) List(c echo.Context) error {
	cuotas, err := h.service.List(c.Request().Context(), ports.CuotaFilter{
		AlumnoID:    c.QueryParam("alumno_id"),
		SoloImpagas: c.QueryParam("impagas") == "true",
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cuotas)
}

// Create handles POST /cuotas — assigns a due to an alumno.
//
// @Summary      Assign a due to an alumno
// @Tags         cuotas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCuotaRequest  true  "Due details"
// @Success      201   {object}  domain.Cuota
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /cuotas [post]
func (h *CuotaHandler) Create(c echo.Context) error {
	var req createCuotaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	vencimiento, _ := time.Parse("2006-01-02", req.FechaVencimiento)

	cuota, err := h.service.Create(c.Request().Context(), ports.CreateCuotaInput{
		AlumnoID:         req.AlumnoID,
		Monto:            req.Monto,
		FechaVencimiento: vencimiento,
		Observaciones:    req.Observaciones,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cuota)
}

// MarkPagada handles PATCH /cuotas/:id/pagar.
//
// @Summary      Mark a due as paid
// @Tags         cuotas
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Cuota ID"
// @Success      200  {object}  domain.Cuota
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /cuotas/{id}/pagar [patch]
func (h *CuotaHandler) MarkPagada(c echo.Context) error {
	cuota, err := h.service.MarkPagada(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cuota)
}

// ListMine handles GET /mis-cuotas for the authenticated cliente.
//
// @Summary      List the authenticated cliente's dues
// @Tags         cuotas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Cuota
// @Router       /mis-cuotas [get]
func (h *CuotaHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	cuotas, err := h.service.ListByAlumno(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cuotas)
}

// EstadoCuenta handles GET /mi-estado-cuenta for the authenticated cliente.
//
// @Summary      Account standing for the authenticated cliente
// @Tags         cuotas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.EstadoCuenta
// @Router       /mi-estado-cuenta [get]
func (h *CuotaHandler) EstadoCuenta(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	estado, err := h.service.EstadoCuenta(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, estado)
}

// Movimientos handles GET /mi-estado-cuenta/movimientos — the cliente's
// payment history, newest first.
//
// @Summary      Payment history for the authenticated cliente
// @Tags         cuotas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.Movimiento
// @Router       /mi-estado-cuenta/movimientos [get]
func (h *CuotaHandler) Movimientos(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	movimientos, err := h.service.Movimientos(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movimientos)
}
