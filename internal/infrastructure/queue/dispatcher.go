package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/surtekbb/pileta-system/internal/api/metrics"
	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

const (
	defaultWorkers       = 4
	defaultChannelBuffer = 256
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the recipient, guaranteeing per-user delivery ordering.
type Dispatcher struct {
	workers []chan ports.NotificacionInput
	service ports.NotificacionService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers and the
// given per-worker channel buffer. Non-positive values fall back to defaults.
func NewDispatcher(numWorkers, buffer int, service ports.NotificacionService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultChannelBuffer
	}
	d := &Dispatcher{
		workers: make([]chan ports.NotificacionInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificacionInput, buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its recipient.
// The call is non-blocking up to the channel buffer capacity.
func (d *Dispatcher) Enqueue(input ports.NotificacionInput) {
	i := d.shardIndex(input.UserID)
	d.workers[i] <- input
	metrics.NotificacionesQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple notifications preserving per-user ordering.
func (d *Dispatcher) EnqueueBatch(inputs []ports.NotificacionInput) {
	for _, in := range inputs {
		d.Enqueue(in)
	}
}

// tipoLabel mirrors the tipo defaulting Process applies, so the dispatched
// counter and the stored notification agree.
func tipoLabel(tipo domain.NotificacionTipo) string {
	if tipo == "" {
		return string(domain.NotifGeneral)
	}
	return string(tipo)
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificacionInput) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, input); err != nil {
				metrics.NotificacionesErrorsTotal.WithLabelValues("process_failed").Inc()
				d.log.Error().Err(err).
					Str("user_id", input.UserID).
					Int("worker_id", id).
					Msg("notification delivery failed")
			} else {
				metrics.NotificacionesDispatchedTotal.WithLabelValues(tipoLabel(input.Tipo)).Inc()
			}
			metrics.NotificacionesQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		}
	}
}
