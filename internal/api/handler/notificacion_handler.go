package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// NotificacionDispatcher is the interface the handler uses to enqueue
// notifications for asynchronous delivery.
type NotificacionDispatcher interface {
	Enqueue(input ports.NotificacionInput)
}

// NotificacionHandler exposes the authenticated user's notification inbox and
// the admin broadcast endpoint.
type NotificacionHandler struct {
	service    ports.NotificacionService
	dispatcher NotificacionDispatcher
}

func NewNotificacionHandler(service ports.NotificacionService, dispatcher NotificacionDispatcher) *NotificacionHandler {
	return &NotificacionHandler{service: service, dispatcher: dispatcher}
}

type sendNotificacionRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Tipo    string `json:"tipo"    validate:"required,oneof=cuota_vencida inscripcion general"`
	Titulo  string `json:"titulo"  validate:"required"`
	Mensaje string `json:"mensaje" validate:"required"`
}

type unreadCountResponse struct {
	Unread int64 `json:"unread"`
}

type deletedCountResponse struct {
	Deleted int64 `json:"deleted"`
}

// Send handles POST /notificaciones — enqueues a notification for delivery,
// returns 202.
//
// @Summary      Send a notification to a user
// @Tags         notificaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendNotificacionRequest  true  "Notification"
// @Success      202   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /notificaciones [post]
func (h *NotificacionHandler) Send(c echo.Context) error {
	var req sendNotificacionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.dispatcher.Enqueue(ports.NotificacionInput{
		UserID:  req.UserID,
		Tipo:    domain.NotificacionTipo(req.Tipo),
		Titulo:  req.Titulo,
		Mensaje: req.Mensaje,
	})
	return c.JSON(http.StatusAccepted, messageResponse{Message: "notificación encolada"})
}

// List handles GET /notificaciones for the authenticated user.
//
// @Summary      List the authenticated user's notifications
// @Tags         notificaciones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Notificacion
// @Router       /notificaciones [get]
func (h *NotificacionHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	notificaciones, err := h.service.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificaciones)
}

// CountUnread handles GET /notificaciones/unread.
//
// @Summary      Count unread notifications
// @Tags         notificaciones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  unreadCountResponse
// @Router       /notificaciones/unread [get]
func (h *NotificacionHandler) CountUnread(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	n, err := h.service.CountUnread(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadCountResponse{Unread: n})
}

// MarkRead handles PATCH /notificaciones/:id/leer.
//
// @Summary      Mark a notification as read
// @Tags         notificaciones
// @Security     BearerAuth
// @Param        id  path  string  true  "Notificacion ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /notificaciones/{id}/leer [patch]
func (h *NotificacionHandler) MarkRead(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead handles PATCH /notificaciones/leer-todas.
//
// @Summary      Mark all notifications as read
// @Tags         notificaciones
// @Security     BearerAuth
// @Success      204
// @Router       /notificaciones/leer-todas [patch]
func (h *NotificacionHandler) MarkAllRead(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkAllRead(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /notificaciones/:id.
//
// @Summary      Delete a notification
// @Tags         notificaciones
// @Security     BearerAuth
// @Param        id  path  string  true  "Notificacion ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /notificaciones/{id} [delete]
func (h *NotificacionHandler) Delete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteRead handles DELETE /notificaciones/leidas — clears the read ones.
//
// @Summary      Delete all read notifications
// @Tags         notificaciones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  deletedCountResponse
// @Router       /notificaciones/leidas [delete]
func (h *NotificacionHandler) DeleteRead(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	n, err := h.service.DeleteRead(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedCountResponse{Deleted: n})
}
