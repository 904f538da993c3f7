// Package store contiene las colecciones en memoria del cliente: EntityStore genérico,
// CartStore y el adaptador de snapshots persistidos.
package store

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront-admin/internal/domain"
)

// Entity es cualquier valor identificado por un id único dentro de su colección.
type Entity interface {
	GetID() string
}

// Cloner lo implementan las entidades con mapas, slices o punteros. La colección guarda y
// entrega copias, así nadie fuera de ella modifica un valor publicado.
type Cloner[T any] interface {
	Clone() T
}

func detach[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

func detachAll[T any](items map[string]T) map[string]T {
	var zero T
	if _, ok := any(zero).(Cloner[T]); !ok {
		return items
	}
	out := make(map[string]T, len(items))
	for id, it := range items {
		out[id] = detach(it)
	}
	return out
}

// Patch mezcla superficial de campos sobre una entidad existente.
type Patch[T any] interface {
	Apply(current T) T
}

// PatchFunc adapta una función a Patch.
type PatchFunc[T any] func(T) T

// Apply implementa Patch.
func (f PatchFunc[T]) Apply(current T) T { return f(current) }

// Listener recibe la colección publicada tras cada mutación. Los suscriptores reciben su
// propia copia; los hooks reciben el mapa publicado, que es de solo lectura.
type Listener[T any] func(items map[string]T)

// Reader vista de solo lectura de una colección, para la capa de presentación.
type Reader[T Entity] interface {
	Get(id string) (T, bool)
	List() []T
	Len() int
	Subscribe(fn Listener[T]) (unsubscribe func())
}

// Option configura un EntityStore.
type Option[T Entity] func(*EntityStore[T])

// WithHook registra un hook post-mutación. Los hooks corren antes que los suscriptores.
func WithHook[T Entity](fn Listener[T]) Option[T] {
	return func(s *EntityStore[T]) { s.hooks = append(s.hooks, fn) }
}

// WithLogger asigna el logger de la colección.
func WithLogger[T Entity](log zerolog.Logger) Option[T] {
	return func(s *EntityStore[T]) { s.log = log }
}

// EntityStore colección homogénea id → entidad con semántica copy-on-write.
// Cada mutación construye un mapa nuevo y lo publica; los mapas publicados son inmutables.
type EntityStore[T Entity] struct {
	name string
	log  zerolog.Logger

	mu    sync.RWMutex
	items map[string]T

	subMu   sync.Mutex
	nextSub int
	subs    map[int]Listener[T]
	hooks   []Listener[T]
}

var _ Reader[Entity] = (*EntityStore[Entity])(nil)

// New crea una colección vacía. name se usa en errores y logs.
func New[T Entity](name string, opts ...Option[T]) *EntityStore[T] {
	s := &EntityStore[T]{
		name:  name,
		log:   zerolog.Nop(),
		items: map[string]T{},
		subs:  map[int]Listener[T]{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name nombre de la colección.
func (s *EntityStore[T]) Name() string { return s.name }

// ReplaceAll reemplaza la colección completa y notifica una sola vez.
// Un lote con ids repetidos se rechaza sin cambiar nada.
func (s *EntityStore[T]) ReplaceAll(items []T) error {
	next := make(map[string]T, len(items))
	for _, it := range items {
		id := it.GetID()
		if _, dup := next[id]; dup {
			return fmt.Errorf("%w: %s %s", domain.ErrDuplicateID, s.name, id)
		}
		next[id] = detach(it)
	}
	s.mu.Lock()
	s.items = next
	s.mu.Unlock()
	s.log.Debug().Str("collection", s.name).Int("count", len(next)).Msg("colección reemplazada")
	s.notify(next)
	return nil
}

// Add inserta item. Falla con ErrDuplicateID si el id ya existe.
func (s *EntityStore[T]) Add(item T) error {
	id := item.GetID()
	s.mu.Lock()
	if _, exists := s.items[id]; exists {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s %s", domain.ErrDuplicateID, s.name, id)
	}
	next := maps.Clone(s.items)
	next[id] = detach(item)
	s.items = next
	s.mu.Unlock()
	s.log.Debug().Str("collection", s.name).Str("id", id).Msg("entidad agregada")
	s.notify(next)
	return nil
}

// Update mezcla patch sobre la entidad id. Falla con ErrNotFound si no existe.
func (s *EntityStore[T]) Update(id string, patch Patch[T]) (T, error) {
	return s.rewrite(id, patch.Apply)
}

// ToggleField calcula el siguiente valor con next (función pura) y lo escribe en un solo paso.
func (s *EntityStore[T]) ToggleField(id string, next func(T) T) (T, error) {
	return s.rewrite(id, next)
}

func (s *EntityStore[T]) rewrite(id string, fn func(T) T) (T, error) {
	s.mu.Lock()
	current, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		var zero T
		return zero, fmt.Errorf("%w: %s %s", domain.ErrNotFound, s.name, id)
	}
	updated := fn(detach(current))
	if updated.GetID() != id {
		s.mu.Unlock()
		var zero T
		return zero, fmt.Errorf("%w: %s: el id no se puede modificar", domain.ErrValidationFailed, s.name)
	}
	next := maps.Clone(s.items)
	next[id] = detach(updated)
	s.items = next
	s.mu.Unlock()
	s.log.Debug().Str("collection", s.name).Str("id", id).Msg("entidad actualizada")
	s.notify(next)
	return updated, nil
}

// Remove elimina id. Es idempotente: si no existe no hace nada y devuelve false.
func (s *EntityStore[T]) Remove(id string) bool {
	s.mu.Lock()
	if _, ok := s.items[id]; !ok {
		s.mu.Unlock()
		return false
	}
	next := maps.Clone(s.items)
	delete(next, id)
	s.items = next
	s.mu.Unlock()
	s.log.Debug().Str("collection", s.name).Str("id", id).Msg("entidad eliminada")
	s.notify(next)
	return true
}

// Get devuelve la entidad id.
func (s *EntityStore[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	return detach(it), ok
}

// List devuelve las entidades ordenadas por id (el orden de inserción no importa).
func (s *EntityStore[T]) List() []T {
	snapshot := s.Snapshot()
	ids := slices.Sorted(maps.Keys(snapshot))
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, detach(snapshot[id]))
	}
	return out
}

// Len cantidad de entidades.
func (s *EntityStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot devuelve el mapa publicado actual, sin copiar. No debe modificarse; fuera de
// la colección se lee con Get o List.
func (s *EntityStore[T]) Snapshot() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Subscribe registra fn; se invoca de forma síncrona tras cada mutación exitosa.
func (s *EntityStore[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *EntityStore[T]) notify(items map[string]T) {
	for _, h := range s.hooks {
		h(items)
	}
	s.subMu.Lock()
	ids := slices.Sorted(maps.Keys(s.subs))
	listeners := make([]Listener[T], 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.subs[id])
	}
	s.subMu.Unlock()
	for _, fn := range listeners {
		fn(detachAll(items))
	}
}
