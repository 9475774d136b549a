package console

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// Resource wrappers over the authenticated client. Each maps one API
// endpoint; the session teardown semantics of Client.Do apply to all.

// PasesLibreDisponibles lists the bookable turnos for a date.
func (c *Console) PasesLibreDisponibles(ctx context.Context, fecha time.Time) ([]ports.TurnoDisponible, error) {
	path := "/pases-libre/disponibles?fecha=" + url.QueryEscape(fecha.Format("2006-01-02"))
	var out []ports.TurnoDisponible
	if err := c.client.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type reservarPayload struct {
	TurnoID string `json:"turno_id"`
	Fecha   string `json:"fecha"`
}

// ReservarPaseLibre books a spot in the turno for a single date.
func (c *Console) ReservarPaseLibre(ctx context.Context, turnoID string, fecha time.Time) (*domain.Reserva, error) {
	var out domain.Reserva
	payload := reservarPayload{TurnoID: turnoID, Fecha: fecha.Format("2006-01-02")}
	if err := c.client.Do(ctx, http.MethodPost, "/pases-libre", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MisReservas lists the session user's reservations.
func (c *Console) MisReservas(ctx context.Context) ([]domain.Reserva, error) {
	var out []domain.Reserva
	if err := c.client.Do(ctx, http.MethodGet, "/pases-libre/mis-reservas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelarReserva cancels one of the session user's reservations.
func (c *Console) CancelarReserva(ctx context.Context, id string) error {
	return c.client.Do(ctx, http.MethodDelete, "/pases-libre/"+url.PathEscape(id), nil, nil)
}

type sugerirCambioPayload struct {
	AlumnoID        string `json:"alumno_id"`
	NivelSugeridoID string `json:"nivel_sugerido_id"`
	Observaciones   string `json:"observaciones,omitempty"`
}

// SugerirCambioNivel files a level-change suggestion for an alumno.
func (c *Console) SugerirCambioNivel(ctx context.Context, alumnoID, nivelSugeridoID, observaciones string) (*domain.CambioNivel, error) {
	var out domain.CambioNivel
	payload := sugerirCambioPayload{
		AlumnoID:        alumnoID,
		NivelSugeridoID: nivelSugeridoID,
		Observaciones:   observaciones,
	}
	if err := c.client.Do(ctx, http.MethodPost, "/cambios-nivel", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CambiosNivelPendientes lists the suggestions awaiting resolution.
func (c *Console) CambiosNivelPendientes(ctx context.Context) ([]domain.CambioNivel, error) {
	var out []domain.CambioNivel
	if err := c.client.Do(ctx, http.MethodGet, "/cambios-nivel/pendientes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AprobarCambioNivel approves a pending suggestion.
func (c *Console) AprobarCambioNivel(ctx context.Context, id string) (*domain.CambioNivel, error) {
	return c.resolveCambioNivel(ctx, id, "aprobar")
}

// RechazarCambioNivel rejects a pending suggestion.
func (c *Console) RechazarCambioNivel(ctx context.Context, id string) (*domain.CambioNivel, error) {
	return c.resolveCambioNivel(ctx, id, "rechazar")
}

func (c *Console) resolveCambioNivel(ctx context.Context, id, action string) (*domain.CambioNivel, error) {
	var out domain.CambioNivel
	path := fmt.Sprintf("/cambios-nivel/%s/%s", url.PathEscape(id), action)
	if err := c.client.Do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MiEstadoCuenta fetches the session user's account standing.
func (c *Console) MiEstadoCuenta(ctx context.Context) (*ports.EstadoCuenta, error) {
	var out ports.EstadoCuenta
	if err := c.client.Do(ctx, http.MethodGet, "/mi-estado-cuenta", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MisMovimientos fetches the session user's payment history.
func (c *Console) MisMovimientos(ctx context.Context) ([]ports.Movimiento, error) {
	var out []ports.Movimiento
	if err := c.client.Do(ctx, http.MethodGet, "/mi-estado-cuenta/movimientos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Inasistentes fetches the repeated-absence report.
func (c *Console) Inasistentes(ctx context.Context) ([]ports.Inasistente, error) {
	var out []ports.Inasistente
	if err := c.client.Do(ctx, http.MethodGet, "/alumnos/inasistentes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TurnosPorNiveles fetches the active turnos grouped per nivel.
func (c *Console) TurnosPorNiveles(ctx context.Context) ([]ports.NivelTurnos, error) {
	var out []ports.NivelTurnos
	if err := c.client.Do(ctx, http.MethodGet, "/turnos/por-niveles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
