package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// CambioNivelHandler exposes the level-change flow: profesores suggest,
// coordinadores approve or reject. Resolutions notify the alumno.
type CambioNivelHandler struct {
	service    ports.CambioNivelService
	dispatcher NotificacionDispatcher
}

func NewCambioNivelHandler(service ports.CambioNivelService, dispatcher NotificacionDispatcher) *CambioNivelHandler {
	return &CambioNivelHandler{service: service, dispatcher: dispatcher}
}

type sugerirCambioRequest struct {
	AlumnoID        string `json:"alumno_id"         validate:"required"`
	NivelSugeridoID string `json:"nivel_sugerido_id" validate:"required"`
	Observaciones   string `json:"observaciones"`
}

// Sugerir handles POST /cambios-nivel — files a level-change suggestion on
// behalf of the authenticated profesor.
//
// @Summary      Suggest a level change for an alumno
// @Tags         cambios-nivel
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sugerirCambioRequest  true  "Suggestion"
// @Success      201   {object}  domain.CambioNivel
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /cambios-nivel [post]
func (h *CambioNivelHandler) Sugerir(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sugerirCambioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cambio, err := h.service.Sugerir(c.Request().Context(), ports.SugerirCambioInput{
		AlumnoID:        req.AlumnoID,
		ProfesorID:      userID,
		NivelSugeridoID: req.NivelSugeridoID,
		Observaciones:   req.Observaciones,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cambio)
}

// ListPendientes handles GET /cambios-nivel/pendientes.
//
// @Summary      List pending level-change suggestions
// @Tags         cambios-nivel
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.CambioNivel
// @Router       /cambios-nivel/pendientes [get]
func (h *CambioNivelHandler) ListPendientes(c echo.Context) error {
	pendientes, err := h.service.ListPendientes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pendientes)
}

// Aprobar handles POST /cambios-nivel/:id/aprobar.
//
// @Summary      Approve a level-change suggestion
// @Tags         cambios-nivel
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "CambioNivel ID"
// @Success      200  {object}  domain.CambioNivel
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /cambios-nivel/{id}/aprobar [post]
func (h *CambioNivelHandler) Aprobar(c echo.Context) error {
	cambio, err := h.service.Aprobar(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	h.notifyResolution(cambio)
	return c.JSON(http.StatusOK, cambio)
}

// Rechazar handles POST /cambios-nivel/:id/rechazar.
//
// @Summary      Reject a level-change suggestion
// @Tags         cambios-nivel
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "CambioNivel ID"
// @Success      200  {object}  domain.CambioNivel
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /cambios-nivel/{id}/rechazar [post]
func (h *CambioNivelHandler) Rechazar(c echo.Context) error {
	cambio, err := h.service.Rechazar(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	h.notifyResolution(cambio)
	return c.JSON(http.StatusOK, cambio)
}

// notifyResolution enqueues an inbox notification so the alumno learns the
// outcome without polling the admins.
func (h *CambioNivelHandler) notifyResolution(cambio *domain.CambioNivel) {
	titulo := "Cambio de nivel aprobado"
	if cambio.Estado == domain.CambioRechazado {
		titulo = "Cambio de nivel rechazado"
	}
	h.dispatcher.Enqueue(ports.NotificacionInput{
		UserID: cambio.AlumnoID,
		Tipo:   domain.NotifGeneral,
		Titulo: titulo,
		Mensaje: fmt.Sprintf("Tu solicitud de cambio de nivel fue %s.",
			cambio.Estado),
	})
}
