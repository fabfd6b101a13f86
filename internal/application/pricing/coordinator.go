// Package pricing contiene el coordinador del ciclo de vida de una petición de
// recomendación: Idle → Pending → Resolved/Failed.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/optimal-price/internal/application/ports"
	"github.com/jhoicas/optimal-price/internal/domain"
	"github.com/jhoicas/optimal-price/internal/domain/entity"
)

// UnreachableMessage único mensaje de error mostrado al usuario, sea cual sea la causa.
const UnreachableMessage = "Failed to get prediction. Make sure the pricing service is running and reachable."

// Clases de fallo usadas en logs y métricas (nunca se muestran al usuario).
const (
	FailureTransport = "transport"
	FailureStatus    = "status"
	FailureMalformed = "malformed"
	FailureUnknown   = "unknown"
)

// Coordinator es dueño del RequestState de una sesión y aplica sus transiciones.
// Garantiza como máximo una petición en vuelo: un Submit mientras está Pending se ignora.
type Coordinator struct {
	svc     ports.PricingService
	rec     ports.SubmissionRecorder
	log     zerolog.Logger
	timeout time.Duration

	base   context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	state entity.RequestState
	cycle chan struct{} // se cierra cuando termina el ciclo en curso
}

// Option configura el coordinador.
type Option func(*Coordinator)

// WithLogger asigna el logger usado para transiciones y causas de fallo.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// WithRecorder asigna el receptor de métricas.
func WithRecorder(r ports.SubmissionRecorder) Option {
	return func(c *Coordinator) {
		if r != nil {
			c.rec = r
		}
	}
}

// WithTimeout impone un límite a cada llamada. 0 deja el timeout del transporte.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

// NewCoordinator construye el coordinador en estado Idle.
func NewCoordinator(svc ports.PricingService, opts ...Option) *Coordinator {
	base, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		svc:    svc,
		rec:    noopRecorder{},
		log:    zerolog.Nop(),
		base:   base,
		cancel: cancel,
		state:  entity.IdleState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State devuelve una copia del estado actual.
func (c *Coordinator) State() entity.RequestState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit pasa a Pending, descarta el resultado o error previos y lanza exactamente una
// petición con una copia de in. El canal devuelto recibe el estado terminal del ciclo.
//
// Si ya hay una petición en vuelo devuelve domain.ErrRequestInFlight y no cambia nada.
func (c *Coordinator) Submit(in entity.PricingInput) (<-chan entity.RequestState, error) {
	c.mu.Lock()
	if c.state.IsPending() {
		c.mu.Unlock()
		c.rec.SubmissionIgnored()
		c.log.Debug().Msg("envío ignorado: petición en curso")
		return nil, domain.ErrRequestInFlight
	}
	c.state = entity.PendingState(in)
	cycle := make(chan struct{})
	c.cycle = cycle
	c.mu.Unlock()

	c.log.Debug().Str("state", string(entity.StatusPending)).Msg("transición")

	out := make(chan entity.RequestState, 1)
	go c.run(in, cycle, out)
	return out, nil
}

// Wait bloquea hasta que el ciclo en curso termine o ctx expire y devuelve el estado.
// Si no hay petición en vuelo devuelve el estado actual de inmediato.
func (c *Coordinator) Wait(ctx context.Context) (entity.RequestState, error) {
	c.mu.Lock()
	cycle := c.cycle
	pending := c.state.IsPending()
	c.mu.Unlock()
	if !pending || cycle == nil {
		return c.State(), nil
	}
	select {
	case <-cycle:
		return c.State(), nil
	case <-ctx.Done():
		return c.State(), ctx.Err()
	}
}

// Close libera el coordinador al destruir la sesión. Una petición en vuelo se aborta.
func (c *Coordinator) Close() {
	c.cancel()
}

func (c *Coordinator) run(in entity.PricingInput, cycle chan struct{}, out chan<- entity.RequestState) {
	ctx := c.base
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := c.call(ctx, in)
	elapsed := time.Since(start)

	var next entity.RequestState
	kind := ""
	if err != nil {
		kind = classify(err)
		c.log.Warn().Err(err).Str("kind", kind).Dur("elapsed", elapsed).Msg("recomendación de precio fallida")
		next = entity.FailedState(in, UnreachableMessage)
	} else {
		next = entity.ResolvedState(in, *res)
	}

	c.mu.Lock()
	c.state = next
	c.mu.Unlock()

	c.rec.SubmissionCompleted(next.Status, kind, elapsed)
	c.log.Debug().Str("state", string(next.Status)).Dur("elapsed", elapsed).Msg("transición")
	close(cycle)

	out <- next
	close(out)
}

// call invoca el puerto protegiendo al coordinador de pánicos y resultados nulos.
func (c *Coordinator) call(ctx context.Context, in entity.PricingInput) (res *entity.PricingResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("pricing: pánico en el adaptador: %v", r)
		}
	}()
	res, err = c.svc.PredictPrice(ctx, in)
	if err == nil && res == nil {
		return nil, fmt.Errorf("pricing: %w: resultado vacío", domain.ErrMalformedResponse)
	}
	return res, err
}

func classify(err error) string {
	switch {
	case errors.Is(err, domain.ErrTransport):
		return FailureTransport
	case errors.Is(err, domain.ErrServiceStatus):
		return FailureStatus
	case errors.Is(err, domain.ErrMalformedResponse):
		return FailureMalformed
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return FailureTransport
	default:
		return FailureUnknown
	}
}

type noopRecorder struct{}

func (noopRecorder) SubmissionIgnored() {}

func (noopRecorder) SubmissionCompleted(entity.RequestStatus, string, time.Duration) {}
