package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// CuotaService implements due management.
type CuotaService struct {
	cuotas ports.CuotaRepository
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewCuotaService(cuotas ports.CuotaRepository, users ports.UserRepository, log zerolog.Logger) *CuotaService {
	return &CuotaService{cuotas: cuotas, users: users, log: log}
}

func (s *CuotaService) Create(ctx context.Context, input ports.CreateCuotaInput) (*domain.Cuota, error) {
	if input.Monto <= 0 {
		return nil, fmt.Errorf("monto must be positive")
	}
	if input.FechaVencimiento.IsZero() {
		return nil, fmt.Errorf("fecha_vencimiento is required")
	}

	alumno, err := s.users.FindByID(ctx, input.AlumnoID)
	if err != nil {
		return nil, err
	}
	if alumno.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}

	cuota := &domain.Cuota{
		AlumnoID:         input.AlumnoID,
		Monto:            input.Monto,
		FechaVencimiento: input.FechaVencimiento.UTC(),
		Observaciones:    input.Observaciones,
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.cuotas.Create(ctx, cuota)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("cuota_id", created.ID).
		Str("alumno_id", created.AlumnoID).
		Float64("monto", created.Monto).
		Msg("cuota created")

	return created, nil
}

func (s *CuotaService) List(ctx context.Context, filter ports.CuotaFilter) ([]domain.Cuota, error) {
	return s.cuotas.List(ctx, filter)
}

func (s *CuotaService) ListByAlumno(ctx context.Context, alumnoID string) ([]domain.Cuota, error) {
	return s.cuotas.List(ctx, ports.CuotaFilter{AlumnoID: alumnoID})
}

// MarkPagada settles a cuota. Settling twice fails with ErrCuotaAlreadyPaid
// so the front desk notices double entries.
func (s *CuotaService) MarkPagada(ctx context.Context, id string) (*domain.Cuota, error) {
	cuota, err := s.cuotas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cuota.Pagada {
		return nil, domain.ErrCuotaAlreadyPaid
	}

	at := time.Now().UTC()
	if err := s.cuotas.MarkPagada(ctx, id, at); err != nil {
		return nil, err
	}

	cuota.Pagada = true
	cuota.PagadaAt = &at

	s.log.Info().Str("cuota_id", id).Msg("cuota marked paid")
	return cuota, nil
}

func (s *CuotaService) Vencidas(ctx context.Context, asOf time.Time) ([]domain.Cuota, error) {
	return s.cuotas.List(ctx, ports.CuotaFilter{SoloImpagas: true, VencidasAl: asOf})
}

// EstadoCuenta summarizes the alumno's unpaid cuotas into the account
// standing the cliente dashboard shows.
func (s *CuotaService) EstadoCuenta(ctx context.Context, alumnoID string) (*ports.EstadoCuenta, error) {
	impagas, err := s.cuotas.List(ctx, ports.CuotaFilter{AlumnoID: alumnoID, SoloImpagas: true})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	estado := &ports.EstadoCuenta{CuotasImpagas: len(impagas)}
	for i := range impagas {
		c := &impagas[i]
		estado.TotalPendiente += c.Monto
		if c.Vencida(now) {
			estado.CuotasVencidas++
		}
		if estado.ProximoVencimiento == nil || c.FechaVencimiento.Before(*estado.ProximoVencimiento) {
			v := c.FechaVencimiento
			estado.ProximoVencimiento = &v
		}
	}
	estado.AlDia = estado.CuotasVencidas == 0
	return estado, nil
}

// Movimientos lists the alumno's settled cuotas, newest settlement first.
func (s *CuotaService) Movimientos(ctx context.Context, alumnoID string) ([]ports.Movimiento, error) {
	cuotas, err := s.cuotas.List(ctx, ports.CuotaFilter{AlumnoID: alumnoID})
	if err != nil {
		return nil, err
	}

	movimientos := make([]ports.Movimiento, 0, len(cuotas))
	for _, c := range cuotas {
		if !c.Pagada || c.PagadaAt == nil {
			continue
		}
		movimientos = append(movimientos, ports.Movimiento{
			CuotaID:  c.ID,
			Monto:    c.Monto,
			Fecha:    *c.PagadaAt,
			Concepto: c.Observaciones,
		})
	}
	sort.Slice(movimientos, func(i, j int) bool {
		return movimientos[i].Fecha.After(movimientos[j].Fecha)
	})
	return movimientos, nil
}
