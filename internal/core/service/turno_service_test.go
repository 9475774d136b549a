package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

type stubNivelRepo struct{ niveles map[string]*domain.Nivel }

func (r *stubNivelRepo) Create(_ context.Context, n *domain.Nivel) (*domain.Nivel, error) {
	clone := *n
	clone.ID = fmt.Sprintf("n%d", len(r.niveles)+1)
	r.niveles[clone.ID] = &clone
	out := clone
	return &out, nil
}
func (r *stubNivelRepo) Update(_ context.Context, n *domain.Nivel) (*domain.Nivel, error) {
	return n, nil
}
func (r *stubNivelRepo) Delete(_ context.Context, id string) error { return nil }
func (r *stubNivelRepo) FindByID(_ context.Context, id string) (*domain.Nivel, error) {
	if n, ok := r.niveles[id]; ok {
		return n, nil
	}
	return nil, domain.ErrNivelNotFound
}
func (r *stubNivelRepo) List(_ context.Context) ([]domain.Nivel, error) {
	var out []domain.Nivel
	for _, n := range r.niveles {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubPiletaRepo struct{ piletas map[string]*domain.Pileta }

func (r *stubPiletaRepo) Create(_ context.Context, p *domain.Pileta) (*domain.Pileta, error) {
	clone := *p
	clone.ID = fmt.Sprintf("p%d", len(r.piletas)+1)
	r.piletas[clone.ID] = &clone
	out := clone
	return &out, nil
}
func (r *stubPiletaRepo) Update(_ context.Context, p *domain.Pileta) (*domain.Pileta, error) {
	return p, nil
}
func (r *stubPiletaRepo) Delete(_ context.Context, id string) error { return nil }
func (r *stubPiletaRepo) FindByID(_ context.Context, id string) (*domain.Pileta, error) {
	if p, ok := r.piletas[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPiletaNotFound
}
func (r *stubPiletaRepo) List(_ context.Context) ([]domain.Pileta, error) { return nil, nil }

type stubProfesorRepo struct{ profesores map[string]*domain.Profesor }

func (r *stubProfesorRepo) Create(_ context.Context, p *domain.Profesor) (*domain.Profesor, error) {
	clone := *p
	clone.ID = fmt.Sprintf("pr%d", len(r.profesores)+1)
	r.profesores[clone.ID] = &clone
	out := clone
	return &out, nil
}
func (r *stubProfesorRepo) Update(_ context.Context, p *domain.Profesor) (*domain.Profesor, error) {
	return p, nil
}
func (r *stubProfesorRepo) Delete(_ context.Context, id string) error { return nil }
func (r *stubProfesorRepo) FindByID(_ context.Context, id string) (*domain.Profesor, error) {
	if p, ok := r.profesores[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProfesorNotFound
}
func (r *stubProfesorRepo) List(_ context.Context) ([]domain.Profesor, error) { return nil, nil }

type stubClaseRepo struct {
	clases map[string]*domain.Clase
	nextID int
}

func newStubClaseRepo() *stubClaseRepo {
	return &stubClaseRepo{clases: make(map[string]*domain.Clase)}
}

func (r *stubClaseRepo) InsertMissing(_ context.Context, clases []domain.Clase) (int, error) {
	created := 0
	for _, c := range clases {
		exists := false
		for _, have := range r.clases {
			if have.TurnoID == c.TurnoID && have.Fecha.Equal(c.Fecha) {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		clone := c
		r.nextID++
		clone.ID = fmt.Sprintf("c%d", r.nextID)
		r.clases[clone.ID] = &clone
		created++
	}
	return created, nil
}

func (r *stubClaseRepo) FindByID(_ context.Context, id string) (*domain.Clase, error) {
	if c, ok := r.clases[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrClaseNotFound
}

func (r *stubClaseRepo) ListByTurno(_ context.Context, turnoID string) ([]domain.Clase, error) {
	var out []domain.Clase
	for _, c := range r.clases {
		if c.TurnoID == turnoID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func newTurnoFixture(t *testing.T) (*TurnoService, *stubTurnoRepo, ports.UpdateTurnoInput) {
	t.Helper()
	niveles := &stubNivelRepo{niveles: make(map[string]*domain.Nivel)}
	piletas := &stubPiletaRepo{piletas: make(map[string]*domain.Pileta)}
	profesores := &stubProfesorRepo{profesores: make(map[string]*domain.Profesor)}
	turnos := newStubTurnoRepo()
	clases := newStubClaseRepo()

	ctx := context.Background()
	nivel, _ := niveles.Create(ctx, &domain.Nivel{Nombre: "Iniciación", Orden: 1})
	pileta, _ := piletas.Create(ctx, &domain.Pileta{Nombre: "Pileta 25m", Activa: true})
	profesor, _ := profesores.Create(ctx, &domain.Profesor{Nombre: "Juan", Apellido: "Pérez", DNI: "20111222"})

	svc := NewTurnoService(turnos, clases, niveles, profesores, piletas, zerolog.Nop())
	input := ports.UpdateTurnoInput{
		DiaSemana:  3, // miércoles
		HoraInicio: "18:00",
		HoraFin:    "19:00",
		NivelID:    nivel.ID,
		ProfesorID: profesor.ID,
		PiletaID:   pileta.ID,
		CupoMaximo: 12,
		Activo:     true,
	}
	return svc, turnos, input
}

func TestTurnoService_CreateValidation(t *testing.T) {
	svc, _, input := newTurnoFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*ports.UpdateTurnoInput)
	}{
		{"dia out of range", func(i *ports.UpdateTurnoInput) { i.DiaSemana = 7 }},
		{"bad hora format", func(i *ports.UpdateTurnoInput) { i.HoraInicio = "25:99" }},
		{"fin before inicio", func(i *ports.UpdateTurnoInput) { i.HoraFin = "17:00" }},
		{"zero cupo", func(i *ports.UpdateTurnoInput) { i.CupoMaximo = 0 }},
		{"unknown nivel", func(i *ports.UpdateTurnoInput) { i.NivelID = "missing" }},
		{"unknown profesor", func(i *ports.UpdateTurnoInput) { i.ProfesorID = "missing" }},
		{"unknown pileta", func(i *ports.UpdateTurnoInput) { i.PiletaID = "missing" }},
	}
	for _, tc := range cases {
		bad := input
		tc.mutate(&bad)
		if _, err := svc.Create(ctx, bad); err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
	}

	if _, err := svc.Create(ctx, input); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestTurnoService_GenerarClases(t *testing.T) {
	svc, _, input := newTurnoFixture(t)
	ctx := context.Background()

	turno, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("create turno: %v", err)
	}

	// 2026-06-01 is a Monday; Wednesdays in the span are 3, 10, 17, 24.
	desde := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2026, 6, 28, 0, 0, 0, 0, time.UTC)

	created, err := svc.GenerarClases(ctx, ports.GenerarClasesInput{TurnoID: turno.ID, Desde: desde, Hasta: hasta})
	if err != nil {
		t.Fatalf("generar clases: %v", err)
	}
	if created != 4 {
		t.Fatalf("expected 4 clases, got %d", created)
	}

	clases, err := svc.ListClases(ctx, turno.ID)
	if err != nil {
		t.Fatalf("list clases: %v", err)
	}
	for _, c := range clases {
		if c.Fecha.Weekday() != time.Wednesday {
			t.Fatalf("clase on %s, expected Wednesday", c.Fecha.Weekday())
		}
	}

	// Regenerating the same span creates nothing new.
	created, err = svc.GenerarClases(ctx, ports.GenerarClasesInput{TurnoID: turno.ID, Desde: desde, Hasta: hasta})
	if err != nil {
		t.Fatalf("regenerate clases: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected 0 new clases on regeneration, got %d", created)
	}
}

func TestTurnoService_GenerarClases_InvalidSpan(t *testing.T) {
	svc, _, input := newTurnoFixture(t)
	ctx := context.Background()

	turno, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("create turno: %v", err)
	}

	_, err = svc.GenerarClases(ctx, ports.GenerarClasesInput{
		TurnoID: turno.ID,
		Desde:   time.Date(2026, 6, 28, 0, 0, 0, 0, time.UTC),
		Hasta:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domain.ErrInvalidDateSpan) {
		t.Fatalf("expected ErrInvalidDateSpan, got %v", err)
	}
}

func TestTurnoService_GenerarClases_InactiveTurno(t *testing.T) {
	svc, _, input := newTurnoFixture(t)
	ctx := context.Background()

	input.Activo = false
	turno, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("create turno: %v", err)
	}

	_, err = svc.GenerarClases(ctx, ports.GenerarClasesInput{
		TurnoID: turno.ID,
		Desde:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Hasta:   time.Date(2026, 6, 28, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domain.ErrTurnoInactive) {
		t.Fatalf("expected ErrTurnoInactive, got %v", err)
	}
}

func TestTurnoService_PorNiveles(t *testing.T) {
	niveles := &stubNivelRepo{niveles: make(map[string]*domain.Nivel)}
	piletas := &stubPiletaRepo{piletas: make(map[string]*domain.Pileta)}
	profesores := &stubProfesorRepo{profesores: make(map[string]*domain.Profesor)}
	turnos := newStubTurnoRepo()
	ctx := context.Background()

	inicial, _ := niveles.Create(ctx, &domain.Nivel{Nombre: "Iniciación", Orden: 1})
	avanzado, _ := niveles.Create(ctx, &domain.Nivel{Nombre: "Avanzado", Orden: 2})
	pileta, _ := piletas.Create(ctx, &domain.Pileta{Nombre: "Pileta 25m", Activa: true})
	profesor, _ := profesores.Create(ctx, &domain.Profesor{Nombre: "Juan", Apellido: "Pérez", DNI: "20111222"})

	svc := NewTurnoService(turnos, newStubClaseRepo(), niveles, profesores, piletas, zerolog.Nop())

	input := ports.UpdateTurnoInput{
		DiaSemana: 3, HoraInicio: "18:00", HoraFin: "19:00",
		NivelID: inicial.ID, ProfesorID: profesor.ID, PiletaID: pileta.ID,
		CupoMaximo: 12, Activo: true,
	}
	if _, err := svc.Create(ctx, input); err != nil {
		t.Fatalf("create active turno: %v", err)
	}
	input.Activo = false
	if _, err := svc.Create(ctx, input); err != nil {
		t.Fatalf("create inactive turno: %v", err)
	}

	grupos, err := svc.PorNiveles(ctx)
	if err != nil {
		t.Fatalf("por niveles: %v", err)
	}
	if len(grupos) != 2 {
		t.Fatalf("expected a group per nivel, got %d", len(grupos))
	}
	if grupos[0].Nivel.ID != inicial.ID || len(grupos[0].Turnos) != 1 {
		t.Fatalf("expected one active turno under %s, got %+v", inicial.Nombre, grupos[0])
	}
	// A nivel without turnos still appears, with an empty list.
	if grupos[1].Nivel.ID != avanzado.ID || len(grupos[1].Turnos) != 0 {
		t.Fatalf("expected empty group for %s, got %+v", avanzado.Nombre, grupos[1])
	}
}

func TestTurnoService_PatchToggleActivo(t *testing.T) {
	svc, turnos, input := newTurnoFixture(t)
	ctx := context.Background()

	turno, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("create turno: %v", err)
	}

	off := false
	patched, err := svc.Patch(ctx, turno.ID, ports.PatchTurnoInput{Activo: &off})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if patched.Activo {
		t.Fatalf("expected turno inactive after patch")
	}
	if patched.CupoMaximo != input.CupoMaximo {
		t.Fatalf("patch must not touch cupo, got %d", patched.CupoMaximo)
	}

	// A bare toggle is a targeted update, not a document replace.
	if turnos.setActivoCalls != 1 {
		t.Fatalf("SetActivo calls = %d, want 1", turnos.setActivoCalls)
	}
	if turnos.updateCalls != 0 {
		t.Fatalf("Update calls = %d, want 0 for an activo-only patch", turnos.updateCalls)
	}
}

func TestTurnoService_PatchActivoAndCupo(t *testing.T) {
	svc, turnos, input := newTurnoFixture(t)
	ctx := context.Background()

	turno, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("create turno: %v", err)
	}

	off := false
	cupo := 20
	patched, err := svc.Patch(ctx, turno.ID, ports.PatchTurnoInput{Activo: &off, CupoMaximo: &cupo})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if patched.Activo || patched.CupoMaximo != 20 {
		t.Fatalf("patch not applied: activo=%v cupo=%d", patched.Activo, patched.CupoMaximo)
	}
	if turnos.setActivoCalls != 0 || turnos.updateCalls != 1 {
		t.Fatalf("mixed patch must replace the document: setActivo=%d update=%d",
			turnos.setActivoCalls, turnos.updateCalls)
	}
}
