package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

type stubInscripcionService struct {
	enrollFn       func(ctx context.Context, turnoID, alumnoID string) (*domain.Inscripcion, error)
	unenrollFn     func(ctx context.Context, id string) error
	listByTurnoFn  func(ctx context.Context, turnoID string) ([]ports.InscripcionDetail, error)
	listByAlumnoFn func(ctx context.Context, alumnoID string) ([]domain.Inscripcion, error)
}

func (s *stubInscripcionService) Enroll(ctx context.Context, turnoID, alumnoID string) (*domain.Inscripcion, error) {
	return s.enrollFn(ctx, turnoID, alumnoID)
}

func (s *stubInscripcionService) Unenroll(ctx context.Context, id string) error {
	return s.unenrollFn(ctx, id)
}

func (s *stubInscripcionService) ListByTurno(ctx context.Context, turnoID string) ([]ports.InscripcionDetail, error) {
	return s.listByTurnoFn(ctx, turnoID)
}

func (s *stubInscripcionService) ListByAlumno(ctx context.Context, alumnoID string) ([]domain.Inscripcion, error) {
	return s.listByAlumnoFn(ctx, alumnoID)
}

func newEnrollContext(e *echo.Echo, body, userID string, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/inscripciones", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", string(role))
	return c, rec
}

func TestInscripcionHandler_Create_AdminEnrollsAnyAlumno(t *testing.T) {
	e := newTestEcho()
	stub := &stubInscripcionService{
		enrollFn: func(ctx context.Context, turnoID, alumnoID string) (*domain.Inscripcion, error) {
			if turnoID != "t1" || alumnoID != "a9" {
				t.Fatalf("unexpected args: %s %s", turnoID, alumnoID)
			}
			return &domain.Inscripcion{ID: "i1", TurnoID: turnoID, AlumnoID: alumnoID}, nil
		},
	}
	handler := NewInscripcionHandler(stub)

	c, rec := newEnrollContext(e, `{"turno_id":"t1","alumno_id":"a9"}`, "sec1", domain.RoleSecretary)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestInscripcionHandler_Create_ClienteAlwaysEnrollsSelf(t *testing.T) {
	e := newTestEcho()
	stub := &stubInscripcionService{
		enrollFn: func(ctx context.Context, turnoID, alumnoID string) (*domain.Inscripcion, error) {
			// The payload names someone else, but the cliente's own ID wins.
			if alumnoID != "cli1" {
				t.Fatalf("cliente enrolled as %q, want cli1", alumnoID)
			}
			return &domain.Inscripcion{ID: "i2", TurnoID: turnoID, AlumnoID: alumnoID}, nil
		},
	}
	handler := NewInscripcionHandler(stub)

	c, rec := newEnrollContext(e, `{"turno_id":"t1","alumno_id":"a9"}`, "cli1", domain.RoleClient)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestInscripcionHandler_Create_AdminMissingAlumno(t *testing.T) {
	e := newTestEcho()
	stub := &stubInscripcionService{
		enrollFn: func(ctx context.Context, turnoID, alumnoID string) (*domain.Inscripcion, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewInscripcionHandler(stub)

	c, rec := newEnrollContext(e, `{"turno_id":"t1"}`, "sec1", domain.RoleSecretary)

	renderError(t, c, handler.Create(c))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInscripcionHandler_Create_TurnoFull(t *testing.T) {
	e := newTestEcho()
	stub := &stubInscripcionService{
		enrollFn: func(ctx context.Context, turnoID, alumnoID string) (*domain.Inscripcion, error) {
			return nil, domain.ErrTurnoFull
		},
	}
	handler := NewInscripcionHandler(stub)

	c, _ := newEnrollContext(e, `{"turno_id":"t1","alumno_id":"a9"}`, "sec1", domain.RoleSecretary)

	err := handler.Create(c)
	if err != domain.ErrTurnoFull {
		t.Fatalf("expected ErrTurnoFull, got %v", err)
	}
}

func TestInscripcionHandler_Delete_ClienteCannotRemoveOthers(t *testing.T) {
	e := newTestEcho()
	stub := &stubInscripcionService{
		listByAlumnoFn: func(ctx context.Context, alumnoID string) ([]domain.Inscripcion, error) {
			return []domain.Inscripcion{{ID: "mine", AlumnoID: alumnoID}}, nil
		},
		unenrollFn: func(ctx context.Context, id string) error {
			t.Fatalf("unenroll must not be reached")
			return nil
		},
	}
	handler := NewInscripcionHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/inscripciones/theirs", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("theirs")
	c.Set("user_id", "cli1")
	c.Set("role", string(domain.RoleClient))

	err := handler.Delete(c)
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestInscripcionHandler_Delete_ClienteRemovesOwn(t *testing.T) {
	e := newTestEcho()
	var unenrolled string
	stub := &stubInscripcionService{
		listByAlumnoFn: func(ctx context.Context, alumnoID string) ([]domain.Inscripcion, error) {
			return []domain.Inscripcion{{ID: "mine", AlumnoID: alumnoID}}, nil
		},
		unenrollFn: func(ctx context.Context, id string) error {
			unenrolled = id
			return nil
		},
	}
	handler := NewInscripcionHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/inscripciones/mine", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("mine")
	c.Set("user_id", "cli1")
	c.Set("role", string(domain.RoleClient))

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if unenrolled != "mine" {
		t.Fatalf("unenrolled %q, want mine", unenrolled)
	}
}

func TestInscripcionHandler_ListMine(t *testing.T) {
	e := newTestEcho()
	stub := &stubInscripcionService{
		listByAlumnoFn: func(ctx context.Context, alumnoID string) ([]domain.Inscripcion, error) {
			if alumnoID != "cli1" {
				t.Fatalf("unexpected alumno %q", alumnoID)
			}
			return []domain.Inscripcion{{ID: "i1", AlumnoID: alumnoID}}, nil
		},
	}
	handler := NewInscripcionHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/mis-inscripciones", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "cli1")
	c.Set("role", string(domain.RoleClient))

	if err := handler.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
