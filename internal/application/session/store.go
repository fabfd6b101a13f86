// Package session aloja las sesiones del dashboard: cada sesión es una instancia
// independiente de FormState + RequestCoordinator, nunca compartida con otra.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"github.com/jhoicas/optimal-price/internal/application/form"
	"github.com/jhoicas/optimal-price/internal/application/ports"
	"github.com/jhoicas/optimal-price/internal/application/pricing"
	"github.com/jhoicas/optimal-price/internal/domain"
	"github.com/jhoicas/optimal-price/internal/domain/entity"
)

// Session estado de un dashboard abierto.
type Session struct {
	ID string

	mu    sync.Mutex
	form  form.State
	coord *pricing.Coordinator
}

// Form devuelve la instantánea actual del formulario.
func (s *Session) Form() form.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Edit aplica una edición de campo. Un valor no interpretable conserva el anterior y
// devuelve domain.ErrInvalidInput junto con el formulario sin cambios.
func (s *Session) Edit(field, raw string) (form.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.form.Update(field, raw)
	s.form = next
	return next, err
}

// EditAll aplica varias ediciones y devuelve los campos rechazados.
func (s *Session) EditAll(values map[string]string) (form.State, []form.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, rejected := s.form.ApplyAll(values)
	s.form = next
	return next, rejected
}

// Submit envía la instantánea actual del formulario. Ediciones posteriores no
// alteran el cuerpo de la petición ya emitida.
func (s *Session) Submit() (<-chan entity.RequestState, error) {
	s.mu.Lock()
	in := s.form.ToRequest()
	s.mu.Unlock()
	return s.coord.Submit(in)
}

// State estado actual del ciclo de petición.
func (s *Session) State() entity.RequestState {
	return s.coord.State()
}

// Wait espera a que termine la petición en vuelo, si la hay.
func (s *Session) Wait(ctx context.Context) (entity.RequestState, error) {
	return s.coord.Wait(ctx)
}

// CoordinatorFactory crea el coordinador de cada sesión nueva.
type CoordinatorFactory func() *pricing.Coordinator

// Store registro en memoria de sesiones sobre ttlcache: expiración por inactividad
// (cada Get renueva el plazo) y un tope de sesiones vivas. Al superar el tope se
// descarta la sesión usada hace más tiempo. Toda sesión que sale del registro, sea
// por Delete, expiración o capacidad, cierra su coordinador.
type Store struct {
	newCoord CoordinatorFactory
	observer ports.SessionObserver
	capacity uint64

	cache         *ttlcache.Cache[string, *Session]
	stopEvictions func()
}

// StoreOption configura el Store.
type StoreOption func(*Store)

// WithObserver asigna el receptor de aperturas/cierres (gauge de sesiones).
func WithObserver(o ports.SessionObserver) StoreOption {
	return func(st *Store) {
		if o != nil {
			st.observer = o
		}
	}
}

// WithCapacity limita el número de sesiones vivas. 0 = sin límite.
func WithCapacity(n uint64) StoreOption {
	return func(st *Store) { st.capacity = n }
}

// NewStore construye el registro. ttl <= 0 desactiva la expiración.
func NewStore(newCoord CoordinatorFactory, ttl time.Duration, opts ...StoreOption) *Store {
	st := &Store{
		newCoord: newCoord,
		observer: noopObserver{},
	}
	for _, opt := range opts {
		opt(st)
	}

	cacheOpts := []ttlcache.Option[string, *Session]{}
	if ttl > 0 {
		cacheOpts = append(cacheOpts, ttlcache.WithTTL[string, *Session](ttl))
	}
	if st.capacity > 0 {
		cacheOpts = append(cacheOpts, ttlcache.WithCapacity[string, *Session](st.capacity))
	}
	st.cache = ttlcache.New(cacheOpts...)
	st.stopEvictions = st.cache.OnEviction(func(_ context.Context, _ ttlcache.EvictionReason, item *ttlcache.Item[string, *Session]) {
		item.Value().coord.Close()
		st.observer.SessionClosed()
	})
	return st
}

// Create abre una sesión nueva en Idle con el formulario por defecto.
func (st *Store) Create() *Session {
	s := &Session{
		ID:    uuid.NewString(),
		form:  form.Default(),
		coord: st.newCoord(),
	}
	st.cache.Set(s.ID, s, ttlcache.DefaultTTL)
	st.observer.SessionOpened()
	return s
}

// Get devuelve la sesión y renueva su expiración.
func (st *Store) Get(id string) (*Session, error) {
	item := st.cache.Get(id)
	if item == nil {
		return nil, domain.ErrSessionNotFound
	}
	return item.Value(), nil
}

// GetOrCreate devuelve la sesión id o abre una nueva si no existe.
func (st *Store) GetOrCreate(id string) (s *Session, created bool) {
	if id != "" {
		if s, err := st.Get(id); err == nil {
			return s, false
		}
	}
	return st.Create(), true
}

// Delete destruye la sesión y su coordinador.
func (st *Store) Delete(id string) {
	st.cache.Delete(id)
}

// Len número de sesiones vivas.
func (st *Store) Len() int {
	return st.cache.Len()
}

// Sweep elimina ya las sesiones expiradas sin esperar a la limpieza automática.
func (st *Store) Sweep() {
	st.cache.DeleteExpired()
}

// Start ejecuta la limpieza automática de sesiones expiradas. Bloquea hasta Close.
func (st *Store) Start() {
	st.cache.Start()
}

// Close detiene la limpieza, destruye todas las sesiones y espera a que sus
// coordinadores queden cerrados.
func (st *Store) Close() {
	st.cache.Stop()
	st.cache.DeleteAll()
	st.stopEvictions()
}

type noopObserver struct{}

func (noopObserver) SessionOpened() {}
func (noopObserver) SessionClosed() {}
