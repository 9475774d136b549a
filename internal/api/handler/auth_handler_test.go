package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, dni, password string) (string, *domain.User, error)
	logoutFn         func(ctx context.Context, token string) error
	registerFn       func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	meFn             func(ctx context.Context, userID string) (*domain.User, error)
	verifyRecoveryFn func(ctx context.Context, dni, telefono string) (string, error)
	resetPasswordFn  func(ctx context.Context, token, password, confirmation string) error
}

func (s *stubAuthService) Login(ctx context.Context, dni, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, dni, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) VerifyRecovery(ctx context.Context, dni, telefono string) (string, error) {
	return s.verifyRecoveryFn(ctx, dni, telefono)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, password, confirmation string) error {
	return s.resetPasswordFn(ctx, token, password, confirmation)
}

// newTestEcho wires the validator the handlers rely on. Errors returned by
// handlers are rendered through a minimal error handler mirroring the one in
// internal/api.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// renderError mirrors the status mapping of the production error handler for
// the cases these tests exercise.
func renderError(t *testing.T, c echo.Context, err error) {
	t.Helper()
	if err == nil {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, map[string]any{"error": he.Message})
		return
	}
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidResetToken):
		_ = c.JSON(http.StatusUnauthorized, map[string]string{"error": "credenciales inválidas"})
	case errors.Is(err, domain.ErrUserExists):
		_ = c.JSON(http.StatusConflict, map[string]string{"error": "ya existe"})
	case errors.Is(err, domain.ErrPasswordMismatch), errors.Is(err, domain.ErrPasswordTooShort):
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal"})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, dni, password string) (string, *domain.User, error) {
			if dni != "30111222" || password != "secreta" {
				t.Fatalf("unexpected args: %s %s", dni, password)
			}
			return "token123", &domain.User{
				ID:     "u1",
				DNI:    dni,
				Role:   domain.RoleCoordinator,
				Status: domain.UserStatusActive,
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"dni":"30111222","password":"secreta"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["dni"] != "30111222" || user["tipo_usuario"] != "coordinador" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must never serialize")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, dni, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"dni":"30111222","password":"mal"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	renderError(t, c, handler.Login(c))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, dni, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	renderError(t, c, handler.Login(c))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, dni, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"dni":"30111222"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	renderError(t, c, handler.Login(c))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Pending(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.DNI != "28999000" || input.Telefono != "1144445555" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{
				ID:     "u2",
				DNI:    input.DNI,
				Role:   domain.RoleClient,
				Status: domain.UserStatusPending,
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"nombre":"Marta","apellido":"Iglesias","dni":"28999000","telefono":"1144445555","password":"abcdef","password_confirmation":"abcdef"}`
	req := httptest.NewRequest(http.MethodPost, "/registro", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["estado"] != "pendiente" {
		t.Fatalf("self-registered accounts must come back pending: %+v", user)
	}
}

func TestAuthHandler_VerifyRecovery(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		verifyRecoveryFn: func(ctx context.Context, dni, telefono string) (string, error) {
			return "reset-token", nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/recuperar-password/verificar",
		strings.NewReader(`{"dni":"30111222","telefono":"1155556666"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.VerifyRecovery(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "reset-token" {
		t.Fatalf("expected reset token in response, got %+v", resp)
	}
}

func TestAuthHandler_ResetPassword_Mismatch(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		resetPasswordFn: func(ctx context.Context, token, password, confirmation string) error {
			return domain.ErrPasswordMismatch
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"token":"reset-token","password":"abcdef","password_confirmation":"abcdeg"}`
	req := httptest.NewRequest(http.MethodPost, "/recuperar-password/cambiar", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	renderError(t, c, handler.ResetPassword(c))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &domain.User{ID: "u1", DNI: "30111222", Role: domain.RoleInstructor}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", "profesor")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

