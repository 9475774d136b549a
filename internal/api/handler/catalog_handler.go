package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// CatalogHandler exposes the administrative CRUD over niveles, piletas and
// profesores.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type nivelRequest struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion"`
	Orden       int    `json:"orden"  validate:"gte=0"`
}

type piletaRequest struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion"`
	Activa      bool   `json:"activa"`
}

type profesorRequest struct {
	Nombre   string `json:"nombre"   validate:"required"`
	Apellido string `json:"apellido" validate:"required"`
	DNI      string `json:"dni"      validate:"required"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Telefono string `json:"telefono"`
}

// --- Niveles ---

// ListNiveles handles GET /niveles.
//
// @Summary      List teaching levels
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Nivel
// @Router       /niveles [get]
func (h *CatalogHandler) ListNiveles(c echo.Context) error {
	niveles, err := h.service.ListNiveles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, niveles)
}

// CreateNivel handles POST /niveles.
//
// @Summary      Create a teaching level
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      nivelRequest  true  "Level details"
// @Success      201   {object}  domain.Nivel
// @Failure      400   {object}  map[string]string
// @Router       /niveles [post]
func (h *CatalogHandler) CreateNivel(c echo.Context) error {
	var req nivelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	nivel, err := h.service.CreateNivel(c.Request().Context(), domain.Nivel{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Orden:       req.Orden,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, nivel)
}

// UpdateNivel handles PUT /niveles/:id.
//
// @Summary      Update a teaching level
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Nivel ID"
// @Param        body  body      nivelRequest  true  "Level details"
// @Success      200   {object}  domain.Nivel
// @Failure      404   {object}  map[string]string
// @Router       /niveles/{id} [put]
func (h *CatalogHandler) UpdateNivel(c echo.Context) error {
	var req nivelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	nivel, err := h.service.UpdateNivel(c.Request().Context(), domain.Nivel{
		ID:          c.Param("id"),
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Orden:       req.Orden,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nivel)
}

// DeleteNivel handles DELETE /niveles/:id.
//
// @Summary      Delete a teaching level
// @Tags         catalogo
// @Security     BearerAuth
// @Param        id  path  string  true  "Nivel ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /niveles/{id} [delete]
func (h *CatalogHandler) DeleteNivel(c echo.Context) error {
	if err := h.service.DeleteNivel(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Piletas ---

// ListPiletas handles GET /piletas.
//
// @Summary      List pools
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Pileta
// @Router       /piletas [get]
func (h *CatalogHandler) ListPiletas(c echo.Context) error {
	piletas, err := h.service.ListPiletas(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, piletas)
}

// CreatePileta handles POST /piletas.
//
// @Summary      Create a pool
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      piletaRequest  true  "Pool details"
// @Success      201   {object}  domain.Pileta
// @Failure      400   {object}  map[string]string
// @Router       /piletas [post]
func (h *CatalogHandler) CreatePileta(c echo.Context) error {
	var req piletaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pileta, err := h.service.CreatePileta(c.Request().Context(), domain.Pileta{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activa:      req.Activa,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pileta)
}

// UpdatePileta handles PUT /piletas/:id.
//
// @Summary      Update a pool
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Pileta ID"
// @Param        body  body      piletaRequest  true  "Pool details"
// @Success      200   {object}  domain.Pileta
// @Failure      404   {object}  map[string]string
// @Router       /piletas/{id} [put]
func (h *CatalogHandler) UpdatePileta(c echo.Context) error {
	var req piletaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pileta, err := h.service.UpdatePileta(c.Request().Context(), domain.Pileta{
		ID:          c.Param("id"),
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activa:      req.Activa,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pileta)
}

// DeletePileta handles DELETE /piletas/:id.
//
// @Summary      Delete a pool
// @Tags         catalogo
// @Security     BearerAuth
// @Param        id  path  string  true  "Pileta ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /piletas/{id} [delete]
func (h *CatalogHandler) DeletePileta(c echo.Context) error {
	if err := h.service.DeletePileta(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Profesores ---

// ListProfesores handles GET /profesores.
//
// @Summary      List instructors
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Profesor
// @Router       /profesores [get]
func (h *CatalogHandler) ListProfesores(c echo.Context) error {
	profesores, err := h.service.ListProfesores(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profesores)
}

// CreateProfesor handles POST /profesores.
//
// @Summary      Create an instructor
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profesorRequest  true  "Instructor details"
// @Success      201   {object}  domain.Profesor
// @Failure      400   {object}  map[string]string
// @Router       /profesores [post]
func (h *CatalogHandler) CreateProfesor(c echo.Context) error {
	var req profesorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profesor, err := h.service.CreateProfesor(c.Request().Context(), domain.Profesor{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		DNI:      req.DNI,
		Email:    req.Email,
		Telefono: req.Telefono,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, profesor)
}

// UpdateProfesor handles PUT /profesores/:id.
//
// @Summary      Update an instructor
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Profesor ID"
// @Param        body  body      profesorRequest  true  "Instructor details"
// @Success      200   {object}  domain.Profesor
// @Failure      404   {object}  map[string]string
// @Router       /profesores/{id} [put]
func (h *CatalogHandler) UpdateProfesor(c echo.Context) error {
	var req profesorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profesor, err := h.service.UpdateProfesor(c.Request().Context(), domain.Profesor{
		ID:       c.Param("id"),
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		DNI:      req.DNI,
		Email:    req.Email,
		Telefono: req.Telefono,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profesor)
}

// DeleteProfesor handles DELETE /profesores/:id.
//
// @Summary      Delete an instructor
// @Tags         catalogo
// @Security     BearerAuth
// @Param        id  path  string  true  "Profesor ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /profesores/{id} [delete]
func (h *CatalogHandler) DeleteProfesor(c echo.Context) error {
	if err := h.service.DeleteProfesor(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
