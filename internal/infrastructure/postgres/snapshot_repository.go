package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/storefront-admin/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

const createSnapshotsTable = `
	CREATE TABLE IF NOT EXISTS snapshots (
		key        TEXT PRIMARY KEY,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// SnapshotRepo implementación del puerto SnapshotRepository sobre PostgreSQL (usable con pool o tx).
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador y asegura la tabla snapshots.
func NewSnapshotRepository(ctx context.Context, q Querier) (*SnapshotRepo, error) {
	if _, err := q.Exec(ctx, createSnapshotsTable); err != nil {
		return nil, fmt.Errorf("crear tabla snapshots: %w", err)
	}
	return &SnapshotRepo{q: q}, nil
}

// Get obtiene el payload de key.
func (r *SnapshotRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := r.q.QueryRow(ctx, `SELECT payload FROM snapshots WHERE key = $1`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get snapshot: %w", err)
	}
	return payload, true, nil
}

// Put inserta o reemplaza el payload de key.
func (r *SnapshotRepo) Put(ctx context.Context, key string, payload []byte) error {
	query := `
		INSERT INTO snapshots (key, payload, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, key, payload); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// Delete elimina key.
func (r *SnapshotRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM snapshots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
