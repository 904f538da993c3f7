// Package sqlite persiste snapshots en un archivo SQLite local (driver Go puro).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // driver sqlite en Go puro

	"github.com/jhoicas/storefront-admin/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo guarda cada snapshot como una fila (key, payload) de la tabla snapshots.
type SnapshotRepo struct {
	db   *sql.DB
	path string
}

// NewSnapshotRepository abre (o crea) la base en path y asegura la tabla.
func NewSnapshotRepository(path string) (*SnapshotRepo, error) {
	if path == "" {
		path = "storefront.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("crear directorios: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Un solo escritor: SQLite serializa igual y así se evitan errores SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear tabla snapshots: %w", err)
	}
	return &SnapshotRepo{db: db, path: path}, nil
}

// Get lee el payload de key.
func (r *SnapshotRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("leer snapshot %s: %w", key, err)
	}
	return payload, true, nil
}

// Put inserta o reemplaza el payload de key.
func (r *SnapshotRepo) Put(ctx context.Context, key string, payload []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots(key, payload, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, payload)
	if err != nil {
		return fmt.Errorf("guardar snapshot %s: %w", key, err)
	}
	return nil
}

// Delete elimina key.
func (r *SnapshotRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("eliminar snapshot %s: %w", key, err)
	}
	return nil
}

// Path ruta del archivo de base de datos.
func (r *SnapshotRepo) Path() string { return r.path }

// Close cierra la conexión.
func (r *SnapshotRepo) Close() error { return r.db.Close() }
