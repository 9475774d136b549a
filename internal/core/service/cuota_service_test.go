package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

type stubCuotaRepo struct {
	items  map[string]*domain.Cuota
	nextID int
}

func newStubCuotaRepo() *stubCuotaRepo {
	return &stubCuotaRepo{items: make(map[string]*domain.Cuota)}
}

func (r *stubCuotaRepo) Create(_ context.Context, c *domain.Cuota) (*domain.Cuota, error) {
	clone := *c
	r.nextID++
	clone.ID = fmt.Sprintf("q%d", r.nextID)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCuotaRepo) FindByID(_ context.Context, id string) (*domain.Cuota, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCuotaNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCuotaRepo) List(_ context.Context, filter ports.CuotaFilter) ([]domain.Cuota, error) {
	var out []domain.Cuota
	for _, c := range r.items {
		if filter.AlumnoID != "" && c.AlumnoID != filter.AlumnoID {
			continue
		}
		if filter.SoloImpagas && c.Pagada {
			continue
		}
		if !filter.VencidasAl.IsZero() && !c.Vencida(filter.VencidasAl) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCuotaRepo) MarkPagada(_ context.Context, id string, at time.Time) error {
	c, ok := r.items[id]
	if !ok {
		return domain.ErrCuotaNotFound
	}
	c.Pagada = true
	c.PagadaAt = &at
	return nil
}

func seedCuota(t *testing.T, cuotas *stubCuotaRepo, alumnoID string, monto float64, vencimiento time.Time, pagadaAt *time.Time) string {
	t.Helper()
	c, err := cuotas.Create(context.Background(), &domain.Cuota{
		AlumnoID:         alumnoID,
		Monto:            monto,
		FechaVencimiento: vencimiento,
		Pagada:           pagadaAt != nil,
		PagadaAt:         pagadaAt,
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed cuota: %v", err)
	}
	return c.ID
}

func TestCuotaService_EstadoCuenta(t *testing.T) {
	cuotas := newStubCuotaRepo()
	svc := NewCuotaService(cuotas, newStubUserRepo(), zerolog.Nop())
	ctx := context.Background()

	now := time.Now().UTC()
	vencida := now.AddDate(0, 0, -10)
	porVencer := now.AddDate(0, 0, 5)
	paid := now.AddDate(0, 0, -30)

	seedCuota(t, cuotas, "a1", 100, vencida, nil)
	seedCuota(t, cuotas, "a1", 150, porVencer, nil)
	seedCuota(t, cuotas, "a1", 100, paid, &paid) // settled, must not count
	seedCuota(t, cuotas, "a2", 999, vencida, nil)

	estado, err := svc.EstadoCuenta(ctx, "a1")
	if err != nil {
		t.Fatalf("estado cuenta: %v", err)
	}
	if estado.AlDia {
		t.Fatal("alumno with an overdue cuota should not be al día")
	}
	if estado.CuotasImpagas != 2 || estado.CuotasVencidas != 1 {
		t.Fatalf("expected 2 impagas / 1 vencida, got %d / %d", estado.CuotasImpagas, estado.CuotasVencidas)
	}
	if estado.TotalPendiente != 250 {
		t.Fatalf("expected total pendiente 250, got %v", estado.TotalPendiente)
	}
	if estado.ProximoVencimiento == nil || !estado.ProximoVencimiento.Equal(vencida) {
		t.Fatalf("expected próximo vencimiento %v, got %v", vencida, estado.ProximoVencimiento)
	}
}

func TestCuotaService_EstadoCuentaAlDia(t *testing.T) {
	cuotas := newStubCuotaRepo()
	svc := NewCuotaService(cuotas, newStubUserRepo(), zerolog.Nop())

	// Only an upcoming cuota: there is debt but nothing overdue.
	seedCuota(t, cuotas, "a1", 100, time.Now().UTC().AddDate(0, 0, 5), nil)

	estado, err := svc.EstadoCuenta(context.Background(), "a1")
	if err != nil {
		t.Fatalf("estado cuenta: %v", err)
	}
	if !estado.AlDia {
		t.Fatal("alumno without overdue cuotas should be al día")
	}
}

func TestCuotaService_MovimientosNewestFirst(t *testing.T) {
	cuotas := newStubCuotaRepo()
	svc := NewCuotaService(cuotas, newStubUserRepo(), zerolog.Nop())

	now := time.Now().UTC()
	old := now.AddDate(0, -2, 0)
	recent := now.AddDate(0, -1, 0)

	seedCuota(t, cuotas, "a1", 100, old, &old)
	seedCuota(t, cuotas, "a1", 150, recent, &recent)
	seedCuota(t, cuotas, "a1", 200, now.AddDate(0, 0, 5), nil) // unpaid, excluded

	movimientos, err := svc.Movimientos(context.Background(), "a1")
	if err != nil {
		t.Fatalf("movimientos: %v", err)
	}
	if len(movimientos) != 2 {
		t.Fatalf("expected 2 movimientos, got %d", len(movimientos))
	}
	if !movimientos[0].Fecha.Equal(recent) || !movimientos[1].Fecha.Equal(old) {
		t.Fatalf("movimientos not sorted newest first: %+v", movimientos)
	}
	if movimientos[0].Monto != 150 {
		t.Fatalf("expected monto 150 first, got %v", movimientos[0].Monto)
	}
}
