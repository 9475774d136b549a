package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// OverdueScanner periodically finds unpaid cuotas past their due date and
// enqueues a cuota_vencida notification for each. The per-cuota dedup key
// keeps repeated scans from notifying the same cuota twice.
type OverdueScanner struct {
	cuotas     ports.CuotaService
	dispatcher *Dispatcher
	interval   time.Duration
	log        zerolog.Logger
}

func NewOverdueScanner(cuotas ports.CuotaService, dispatcher *Dispatcher, interval time.Duration, log zerolog.Logger) *OverdueScanner {
	return &OverdueScanner{
		cuotas:     cuotas,
		dispatcher: dispatcher,
		interval:   interval,
		log:        log,
	}
}

// Run scans immediately, then on every tick until ctx is cancelled.
func (s *OverdueScanner) Run(ctx context.Context) {
	s.scan(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

func (s *OverdueScanner) scan(ctx context.Context) {
	vencidas, err := s.cuotas.Vencidas(ctx, time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("overdue cuota scan failed")
		return
	}

	for _, cuota := range vencidas {
		s.dispatcher.Enqueue(ports.NotificacionInput{
			UserID: cuota.AlumnoID,
			Tipo:   domain.NotifCuotaVencida,
			Titulo: "Cuota vencida",
			Mensaje: fmt.Sprintf("Tu cuota de $%.2f venció el %s. Regularizá el pago en secretaría.",
				cuota.Monto, cuota.FechaVencimiento.Format("02/01/2006")),
			DedupKey: "cuota_vencida:" + cuota.ID,
		})
	}

	if len(vencidas) > 0 {
		s.log.Info().Int("count", len(vencidas)).Msg("overdue cuotas enqueued for notification")
	}
}
