package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

type stubCambioNivelRepo struct {
	items  map[string]*domain.CambioNivel
	nextID int
}

func newStubCambioNivelRepo() *stubCambioNivelRepo {
	return &stubCambioNivelRepo{items: make(map[string]*domain.CambioNivel)}
}

func (r *stubCambioNivelRepo) Create(_ context.Context, c *domain.CambioNivel) (*domain.CambioNivel, error) {
	clone := *c
	r.nextID++
	clone.ID = fmt.Sprintf("cn%d", r.nextID)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCambioNivelRepo) FindByID(_ context.Context, id string) (*domain.CambioNivel, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCambioNivelNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCambioNivelRepo) ListPendientes(_ context.Context) ([]domain.CambioNivel, error) {
	var out []domain.CambioNivel
	for _, c := range r.items {
		if c.Estado == domain.CambioPendiente {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCambioNivelRepo) ExistsPendiente(_ context.Context, alumnoID string) (bool, error) {
	for _, c := range r.items {
		if c.AlumnoID == alumnoID && c.Estado == domain.CambioPendiente {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCambioNivelRepo) UpdateEstado(_ context.Context, id string, estado domain.CambioNivelEstado, at time.Time) error {
	c, ok := r.items[id]
	if !ok {
		return domain.ErrCambioNivelNotFound
	}
	c.Estado = estado
	c.ResolvedAt = &at
	return nil
}

func newCambioNivelFixture(t *testing.T) (*CambioNivelService, *stubUserRepo, string) {
	t.Helper()
	cambios := newStubCambioNivelRepo()
	users := newStubUserRepo()
	niveles := &stubNivelRepo{niveles: make(map[string]*domain.Nivel)}
	svc := NewCambioNivelService(cambios, users, niveles, zerolog.Nop())

	nivel, err := niveles.Create(context.Background(), &domain.Nivel{Nombre: "Delfines"})
	if err != nil {
		t.Fatalf("seed nivel: %v", err)
	}
	return svc, users, nivel.ID
}

func TestCambioNivelService_SugerirOnePendingPerAlumno(t *testing.T) {
	svc, users, nivelID := newCambioNivelFixture(t)
	ctx := context.Background()

	alumno := seedAlumno(t, users, "1", domain.ClientTypeRegular)
	input := ports.SugerirCambioInput{
		AlumnoID:        alumno,
		ProfesorID:      "prof-1",
		NivelSugeridoID: nivelID,
		Observaciones:   "Nada muy serio",
	}

	cambio, err := svc.Sugerir(ctx, input)
	if err != nil {
		t.Fatalf("sugerir failed: %v", err)
	}
	if cambio.Estado != domain.CambioPendiente {
		t.Fatalf("expected estado pendiente, got %s", cambio.Estado)
	}

	if _, err := svc.Sugerir(ctx, input); !errors.Is(err, domain.ErrCambioNivelPending) {
		t.Fatalf("expected ErrCambioNivelPending, got %v", err)
	}
}

func TestCambioNivelService_SugerirRejectsNonCliente(t *testing.T) {
	svc, users, nivelID := newCambioNivelFixture(t)
	ctx := context.Background()

	staff, err := users.Create(ctx, &domain.User{
		Nombre: "Staff", Apellido: "User", DNI: "9",
		Role: domain.RoleSecretary, Status: domain.UserStatusActive,
	})
	if err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	_, err = svc.Sugerir(ctx, ports.SugerirCambioInput{
		AlumnoID:        staff.ID,
		ProfesorID:      "prof-1",
		NivelSugeridoID: nivelID,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCambioNivelService_AprobarResolvesOnce(t *testing.T) {
	svc, users, nivelID := newCambioNivelFixture(t)
	ctx := context.Background()

	alumno := seedAlumno(t, users, "1", domain.ClientTypeRegular)
	cambio, err := svc.Sugerir(ctx, ports.SugerirCambioInput{
		AlumnoID: alumno, ProfesorID: "prof-1", NivelSugeridoID: nivelID,
	})
	if err != nil {
		t.Fatalf("sugerir failed: %v", err)
	}

	aprobado, err := svc.Aprobar(ctx, cambio.ID)
	if err != nil {
		t.Fatalf("aprobar failed: %v", err)
	}
	if aprobado.Estado != domain.CambioAprobado || aprobado.ResolvedAt == nil {
		t.Fatalf("expected estado aprobado with resolved_at, got %+v", aprobado)
	}

	if _, err := svc.Rechazar(ctx, cambio.ID); !errors.Is(err, domain.ErrCambioNivelResolved) {
		t.Fatalf("expected ErrCambioNivelResolved, got %v", err)
	}
}

func TestCambioNivelService_RechazarAllowsNewSuggestion(t *testing.T) {
	svc, users, nivelID := newCambioNivelFixture(t)
	ctx := context.Background()

	alumno := seedAlumno(t, users, "1", domain.ClientTypeRegular)
	input := ports.SugerirCambioInput{
		AlumnoID: alumno, ProfesorID: "prof-1", NivelSugeridoID: nivelID,
	}

	cambio, err := svc.Sugerir(ctx, input)
	if err != nil {
		t.Fatalf("sugerir failed: %v", err)
	}

	rechazado, err := svc.Rechazar(ctx, cambio.ID)
	if err != nil {
		t.Fatalf("rechazar failed: %v", err)
	}
	if rechazado.Estado != domain.CambioRechazado {
		t.Fatalf("expected estado rechazado, got %s", rechazado.Estado)
	}

	// A resolved suggestion no longer blocks a new one.
	if _, err := svc.Sugerir(ctx, input); err != nil {
		t.Fatalf("new sugerir after rechazo failed: %v", err)
	}

	pendientes, err := svc.ListPendientes(ctx)
	if err != nil {
		t.Fatalf("list pendientes: %v", err)
	}
	if len(pendientes) != 1 {
		t.Fatalf("expected one pending suggestion, got %d", len(pendientes))
	}
}
