package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// AlumnoHandler exposes administrative alumno management: creation, search
// and approval of pending self-registrations.
type AlumnoHandler struct {
	service ports.UserService
}

func NewAlumnoHandler(service ports.UserService) *AlumnoHandler {
	return &AlumnoHandler{service: service}
}

type createAlumnoRequest struct {
	Nombre      string `json:"nombre"       validate:"required"`
	Apellido    string `json:"apellido"     validate:"required"`
	DNI         string `json:"dni"          validate:"required"`
	Email       string `json:"email"        validate:"omitempty,email"`
	Telefono    string `json:"telefono"`
	Password    string `json:"password"     validate:"required"`
	TipoCliente string `json:"tipo_cliente" validate:"omitempty,oneof=regular pase_libre"`
}

// Create handles POST /alumnos — creates an already-active cliente account.
//
// @Summary      Create an alumno account
// @Tags         alumnos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAlumnoRequest  true  "Alumno details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /alumnos [post]
func (h *AlumnoHandler) Create(c echo.Context) error {
	var req createAlumnoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tipo := domain.ClientType(req.TipoCliente)
	if tipo == "" {
		tipo = domain.ClientTypeRegular
	}

	alumno, err := h.service.CreateAlumno(c.Request().Context(), ports.CreateAlumnoInput{
		Nombre:      req.Nombre,
		Apellido:    req.Apellido,
		DNI:         req.DNI,
		Email:       req.Email,
		Telefono:    req.Telefono,
		Password:    req.Password,
		TipoCliente: tipo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, alumno)
}

// Search handles GET /alumnos?q= — prefix search on nombre, apellido and DNI.
//
// @Summary      Search alumnos
// @Tags         alumnos
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  false  "Search term"
// @Success      200  {array}  domain.User
// @Router       /alumnos [get]
func (h *AlumnoHandler) Search(c echo.Context) error {
	alumnos, err := h.service.SearchAlumnos(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, alumnos)
}

// ListPending handles GET /alumnos/pendientes — self-registrations awaiting
// approval.
//
// @Summary      List pending registrations
// @Tags         alumnos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /alumnos/pendientes [get]
func (h *AlumnoHandler) ListPending(c echo.Context) error {
	pendientes, err := h.service.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pendientes)
}

// Approve handles PATCH /alumnos/:id/aprobar — activates a pending account.
//
// @Summary      Approve a pending registration
// @Tags         alumnos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /alumnos/{id}/aprobar [patch]
func (h *AlumnoHandler) Approve(c echo.Context) error {
	alumno, err := h.service.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, alumno)
}
