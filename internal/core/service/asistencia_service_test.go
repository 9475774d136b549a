package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

type stubAsistenciaRepo struct {
	items  map[string]*domain.Asistencia
	nextID int
}

func newStubAsistenciaRepo() *stubAsistenciaRepo {
	return &stubAsistenciaRepo{items: make(map[string]*domain.Asistencia)}
}

func (r *stubAsistenciaRepo) Upsert(_ context.Context, a *domain.Asistencia) error {
	for id, have := range r.items {
		if have.ClaseID == a.ClaseID && have.AlumnoID == a.AlumnoID {
			clone := *a
			clone.ID = id
			r.items[id] = &clone
			return nil
		}
	}
	clone := *a
	r.nextID++
	clone.ID = fmt.Sprintf("as%d", r.nextID)
	r.items[clone.ID] = &clone
	return nil
}

func (r *stubAsistenciaRepo) ListByTurnoMonth(_ context.Context, turnoID string, mes, anio int) ([]domain.Asistencia, error) {
	var out []domain.Asistencia
	for _, a := range r.items {
		if a.TurnoID == turnoID && int(a.Fecha.Month()) == mes && a.Fecha.Year() == anio {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAsistenciaRepo) CountAusencias(_ context.Context, since time.Time) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range r.items {
		if a.Estado == domain.AsistenciaAusente && !a.Fecha.Before(since) {
			counts[a.AlumnoID]++
		}
	}
	return counts, nil
}

func seedAusencias(t *testing.T, asistencias *stubAsistenciaRepo, alumnoID string, estado domain.AsistenciaEstado, fechas ...time.Time) {
	t.Helper()
	for i, fecha := range fechas {
		err := asistencias.Upsert(context.Background(), &domain.Asistencia{
			ClaseID:  fmt.Sprintf("%s-c%d", alumnoID, i),
			TurnoID:  "t1",
			AlumnoID: alumnoID,
			Fecha:    fecha,
			Presente: estado == domain.AsistenciaPresente,
			Estado:   estado,
		})
		if err != nil {
			t.Fatalf("seed asistencia: %v", err)
		}
	}
}

func TestAsistenciaService_Inasistentes(t *testing.T) {
	asistencias := newStubAsistenciaRepo()
	users := newStubUserRepo()
	svc := NewAsistenciaService(asistencias, newStubClaseRepo(), users, zerolog.Nop())
	ctx := context.Background()

	now := time.Now().UTC()
	recent := []time.Time{now.AddDate(0, 0, -3), now.AddDate(0, 0, -10), now.AddDate(0, 0, -17)}

	flagged := seedAlumno(t, users, "1", domain.ClientTypeRegular)
	seedAusencias(t, asistencias, flagged, domain.AsistenciaAusente, recent...)

	// Two absences sit under the threshold.
	underThreshold := seedAlumno(t, users, "2", domain.ClientTypeRegular)
	seedAusencias(t, asistencias, underThreshold, domain.AsistenciaAusente, recent[0], recent[1])

	// Justified absences never count.
	justified := seedAlumno(t, users, "3", domain.ClientTypeRegular)
	seedAusencias(t, asistencias, justified, domain.AsistenciaJustificada, recent...)

	inasistentes, err := svc.Inasistentes(ctx)
	if err != nil {
		t.Fatalf("inasistentes: %v", err)
	}
	if len(inasistentes) != 1 {
		t.Fatalf("expected one flagged alumno, got %d", len(inasistentes))
	}
	if inasistentes[0].Alumno.ID != flagged || inasistentes[0].Ausencias != 3 {
		t.Fatalf("unexpected report entry: %+v", inasistentes[0])
	}
}

func TestAsistenciaService_InasistentesIgnoresOldAusencias(t *testing.T) {
	asistencias := newStubAsistenciaRepo()
	users := newStubUserRepo()
	svc := NewAsistenciaService(asistencias, newStubClaseRepo(), users, zerolog.Nop())

	now := time.Now().UTC()
	alumno := seedAlumno(t, users, "1", domain.ClientTypeRegular)
	seedAusencias(t, asistencias, alumno, domain.AsistenciaAusente,
		now.AddDate(0, 0, -40), now.AddDate(0, 0, -50), now.AddDate(0, 0, -60))

	inasistentes, err := svc.Inasistentes(context.Background())
	if err != nil {
		t.Fatalf("inasistentes: %v", err)
	}
	if len(inasistentes) != 0 {
		t.Fatalf("absences outside the window must not flag, got %+v", inasistentes)
	}
}

func TestAsistenciaService_InasistentesSkipsMissingAlumno(t *testing.T) {
	asistencias := newStubAsistenciaRepo()
	users := newStubUserRepo()
	svc := NewAsistenciaService(asistencias, newStubClaseRepo(), users, zerolog.Nop())

	now := time.Now().UTC()
	seedAusencias(t, asistencias, "ghost", domain.AsistenciaAusente,
		now.AddDate(0, 0, -1), now.AddDate(0, 0, -2), now.AddDate(0, 0, -3))

	inasistentes, err := svc.Inasistentes(context.Background())
	if err != nil {
		t.Fatalf("inasistentes: %v", err)
	}
	if len(inasistentes) != 0 {
		t.Fatalf("deleted alumnos must be skipped, got %+v", inasistentes)
	}
}
