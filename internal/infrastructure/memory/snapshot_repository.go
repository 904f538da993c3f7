// Package memory implementa el puerto de snapshots en memoria, para tests y modo efímero.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/storefront-admin/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo almacenamiento clave → payload en un mapa protegido por mutex.
type SnapshotRepo struct {
	mu   sync.RWMutex
	data map[string][]byte
	// FailWrites fuerza errores de escritura (p. ej. para simular cuota agotada en tests).
	FailWrites error
}

// NewSnapshotRepository construye el repositorio vacío.
func NewSnapshotRepository() *SnapshotRepo {
	return &SnapshotRepo{data: make(map[string][]byte)}
}

// Get devuelve una copia del payload guardado.
func (r *SnapshotRepo) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put guarda una copia de payload.
func (r *SnapshotRepo) Put(_ context.Context, key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites != nil {
		return r.FailWrites
	}
	r.data[key] = append([]byte(nil), payload...)
	return nil
}

// Delete elimina key (no falla si no existe).
func (r *SnapshotRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}
