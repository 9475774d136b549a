package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

type stubTurnoRepo struct {
	turnos         map[string]*domain.Turno
	updateCalls    int
	setActivoCalls int
}

func newStubTurnoRepo() *stubTurnoRepo {
	return &stubTurnoRepo{turnos: make(map[string]*domain.Turno)}
}

func (r *stubTurnoRepo) Create(_ context.Context, t *domain.Turno) (*domain.Turno, error) {
	clone := *t
	clone.ID = fmt.Sprintf("t%d", len(r.turnos)+1)
	r.turnos[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTurnoRepo) Update(_ context.Context, t *domain.Turno) (*domain.Turno, error) {
	r.updateCalls++
	if _, ok := r.turnos[t.ID]; !ok {
		return nil, domain.ErrTurnoNotFound
	}
	clone := *t
	r.turnos[t.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTurnoRepo) SetActivo(_ context.Context, id string, activo bool) error {
	r.setActivoCalls++
	t, ok := r.turnos[id]
	if !ok {
		return domain.ErrTurnoNotFound
	}
	t.Activo = activo
	return nil
}

func (r *stubTurnoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.turnos[id]; !ok {
		return domain.ErrTurnoNotFound
	}
	delete(r.turnos, id)
	return nil
}

func (r *stubTurnoRepo) FindByID(_ context.Context, id string) (*domain.Turno, error) {
	t, ok := r.turnos[id]
	if !ok {
		return nil, domain.ErrTurnoNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTurnoRepo) List(_ context.Context, filter ports.TurnoFilter) ([]domain.Turno, error) {
	var out []domain.Turno
	for _, t := range r.turnos {
		if filter.SoloActivo && !t.Activo {
			continue
		}
		if len(filter.Dias) > 0 && !slices.Contains(filter.Dias, t.DiaSemana) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

type stubInscripcionRepo struct {
	items  map[string]*domain.Inscripcion
	nextID int
}

func newStubInscripcionRepo() *stubInscripcionRepo {
	return &stubInscripcionRepo{items: make(map[string]*domain.Inscripcion)}
}

func (r *stubInscripcionRepo) Create(_ context.Context, i *domain.Inscripcion) (*domain.Inscripcion, error) {
	clone := *i
	r.nextID++
	clone.ID = fmt.Sprintf("i%d", r.nextID)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubInscripcionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrInscripcionNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubInscripcionRepo) FindByID(_ context.Context, id string) (*domain.Inscripcion, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, domain.ErrInscripcionNotFound
	}
	clone := *i
	return &clone, nil
}

func (r *stubInscripcionRepo) ListByTurno(_ context.Context, turnoID string) ([]domain.Inscripcion, error) {
	var out []domain.Inscripcion
	for _, i := range r.items {
		if i.TurnoID == turnoID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInscripcionRepo) ListByAlumno(_ context.Context, alumnoID string) ([]domain.Inscripcion, error) {
	var out []domain.Inscripcion
	for _, i := range r.items {
		if i.AlumnoID == alumnoID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInscripcionRepo) CountByTurno(_ context.Context, turnoID string) (int, error) {
	count := 0
	for _, i := range r.items {
		if i.TurnoID == turnoID {
			count++
		}
	}
	return count, nil
}

func (r *stubInscripcionRepo) Exists(_ context.Context, turnoID, alumnoID string) (bool, error) {
	for _, i := range r.items {
		if i.TurnoID == turnoID && i.AlumnoID == alumnoID {
			return true, nil
		}
	}
	return false, nil
}

func newEnrollFixture(t *testing.T, cupo int) (*InscripcionService, *stubTurnoRepo, *stubUserRepo, string) {
	t.Helper()
	turnos := newStubTurnoRepo()
	users := newStubUserRepo()
	inscripciones := newStubInscripcionRepo()
	svc := NewInscripcionService(inscripciones, turnos, users, zerolog.Nop())

	turno, err := turnos.Create(context.Background(), &domain.Turno{
		DiaSemana:  1,
		HoraInicio: "18:00",
		HoraFin:    "19:00",
		CupoMaximo: cupo,
		Activo:     true,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed turno: %v", err)
	}
	return svc, turnos, users, turno.ID
}

func seedAlumno(t *testing.T, users *stubUserRepo, dni string, tipo domain.ClientType) string {
	t.Helper()
	u, err := users.Create(context.Background(), &domain.User{
		Nombre:      "Alumno",
		Apellido:    dni,
		DNI:         dni,
		Role:        domain.RoleClient,
		TipoCliente: tipo,
		Status:      domain.UserStatusActive,
	})
	if err != nil {
		t.Fatalf("seed alumno: %v", err)
	}
	return u.ID
}

func TestInscripcionService_EnrollAndCapacity(t *testing.T) {
	svc, _, users, turnoID := newEnrollFixture(t, 2)
	ctx := context.Background()

	a1 := seedAlumno(t, users, "1", domain.ClientTypeRegular)
	a2 := seedAlumno(t, users, "2", domain.ClientTypeRegular)
	a3 := seedAlumno(t, users, "3", domain.ClientTypeRegular)

	if _, err := svc.Enroll(ctx, turnoID, a1); err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}
	if _, err := svc.Enroll(ctx, turnoID, a2); err != nil {
		t.Fatalf("second enroll failed: %v", err)
	}
	if _, err := svc.Enroll(ctx, turnoID, a3); !errors.Is(err, domain.ErrTurnoFull) {
		t.Fatalf("expected ErrTurnoFull, got %v", err)
	}
}

func TestInscripcionService_PaseLibreBypassesCapacity(t *testing.T) {
	svc, _, users, turnoID := newEnrollFixture(t, 1)
	ctx := context.Background()

	regular := seedAlumno(t, users, "1", domain.ClientTypeRegular)
	paseLibre := seedAlumno(t, users, "2", domain.ClientTypePaseLibre)

	if _, err := svc.Enroll(ctx, turnoID, regular); err != nil {
		t.Fatalf("enroll regular failed: %v", err)
	}
	if _, err := svc.Enroll(ctx, turnoID, paseLibre); err != nil {
		t.Fatalf("pase libre should bypass capacity, got %v", err)
	}
}

func TestInscripcionService_DuplicateEnrollment(t *testing.T) {
	svc, _, users, turnoID := newEnrollFixture(t, 10)
	ctx := context.Background()

	alumno := seedAlumno(t, users, "1", domain.ClientTypeRegular)

	if _, err := svc.Enroll(ctx, turnoID, alumno); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if _, err := svc.Enroll(ctx, turnoID, alumno); !errors.Is(err, domain.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
}

func TestInscripcionService_InactiveTurno(t *testing.T) {
	svc, turnos, users, turnoID := newEnrollFixture(t, 10)
	ctx := context.Background()

	if err := turnos.SetActivo(ctx, turnoID, false); err != nil {
		t.Fatalf("deactivate turno: %v", err)
	}
	alumno := seedAlumno(t, users, "1", domain.ClientTypeRegular)

	if _, err := svc.Enroll(ctx, turnoID, alumno); !errors.Is(err, domain.ErrTurnoInactive) {
		t.Fatalf("expected ErrTurnoInactive, got %v", err)
	}
}

func TestInscripcionService_NonClienteRejected(t *testing.T) {
	svc, _, users, turnoID := newEnrollFixture(t, 10)
	ctx := context.Background()

	staff, err := users.Create(ctx, &domain.User{
		Nombre: "Staff", Apellido: "User", DNI: "9",
		Role: domain.RoleSecretary, Status: domain.UserStatusActive,
	})
	if err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	if _, err := svc.Enroll(ctx, turnoID, staff.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
