package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront-admin/internal/domain/repository"
)

// Claves de los snapshots persistidos.
const (
	CartKey = "cart-storage"
	AuthKey = "auth-storage"
)

const defaultPersistTimeout = 2 * time.Second

// Snapshots lee y escribe snapshots JSON con nombre sobre un SnapshotRepository.
// Los datos ausentes o corruptos se sustituyen por un valor por defecto.
type Snapshots struct {
	repo    repository.SnapshotRepository
	timeout time.Duration
	log     zerolog.Logger
}

// NewSnapshots construye el adaptador. timeout <= 0 usa el valor por defecto.
func NewSnapshots(repo repository.SnapshotRepository, timeout time.Duration, log zerolog.Logger) *Snapshots {
	if timeout <= 0 {
		timeout = defaultPersistTimeout
	}
	return &Snapshots{repo: repo, timeout: timeout, log: log}
}

// Load decodifica el snapshot guardado bajo key. Devuelve def si falta, si no se puede
// leer o si valid (opcional) lo rechaza.
func Load[T any](s *Snapshots, key string, def T, valid func(T) error) T {
	if s == nil || s.repo == nil {
		return def
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	payload, found, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("lectura de snapshot fallida, se usa el valor por defecto")
		return def
	}
	if !found {
		return def
	}
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("snapshot corrupto, se usa el valor por defecto")
		return def
	}
	if valid != nil {
		if err := valid(v); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("snapshot inválido, se usa el valor por defecto")
			return def
		}
	}
	return v
}

// Save serializa v bajo key.
func Save[T any](s *Snapshots, key string, v T) error {
	if s == nil || s.repo == nil {
		return nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("codificar snapshot %s: %w", key, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.repo.Put(ctx, key, payload); err != nil {
		return fmt.Errorf("guardar snapshot %s: %w", key, err)
	}
	return nil
}

// SaveBestEffort guarda v y solo registra el error: el estado en memoria sigue siendo la fuente de verdad.
func SaveBestEffort[T any](s *Snapshots, key string, v T) {
	if err := Save(s, key, v); err != nil && s != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("no se pudo persistir el snapshot")
	}
}

// Clear elimina el snapshot key.
func (s *Snapshots) Clear(key string) error {
	if s == nil || s.repo == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.repo.Delete(ctx, key)
}
