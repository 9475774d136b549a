package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/api/metrics"
	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// AuthHandler exposes login, logout, self-registration and password recovery.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	DNI      string `json:"dni"      validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Nombre               string `json:"nombre"                validate:"required"`
	Apellido             string `json:"apellido"              validate:"required"`
	DNI                  string `json:"dni"                   validate:"required"`
	Email                string `json:"email"                 validate:"omitempty,email"`
	Telefono             string `json:"telefono"              validate:"required"`
	Password             string `json:"password"              validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

type verifyRecoveryRequest struct {
	DNI      string `json:"dni"      validate:"required"`
	Telefono string `json:"telefono" validate:"required"`
}

type resetPasswordRequest struct {
	Token                string `json:"token"                 validate:"required"`
	Password             string `json:"password"              validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type recoveryResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login authenticates by DNI + password and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.DNI, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout revokes the presented token until its natural expiry.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Register creates a pending cliente account awaiting approval.
//
// @Summary      Self-register a new cliente account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /registro [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Nombre:               req.Nombre,
		Apellido:             req.Apellido,
		DNI:                  req.DNI,
		Email:                req.Email,
		Telefono:             req.Telefono,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Me returns the authenticated user's profile.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// VerifyRecovery is step one of password recovery: it checks DNI + telefono
// and hands back a short-lived reset token.
//
// @Summary      Verify identity for password recovery
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyRecoveryRequest  true  "Identity check"
// @Success      200   {object}  recoveryResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /recuperar-password/verificar [post]
func (h *AuthHandler) VerifyRecovery(c echo.Context) error {
	var req verifyRecoveryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.VerifyRecovery(c.Request().Context(), req.DNI, req.Telefono)
	if err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("verificar", "rejected").Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("verificar", "ok").Inc()
	return c.JSON(http.StatusOK, recoveryResponse{Token: token})
}

// ResetPassword is step two of password recovery: it consumes the reset token
// and stores the new password.
//
// @Summary      Change password with a recovery token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "New password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /recuperar-password/cambiar [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.Password, req.PasswordConfirmation); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("cambiar", "rejected").Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("cambiar", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "contraseña actualizada"})
}
