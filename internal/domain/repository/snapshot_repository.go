package repository

import "context"

// SnapshotRepository define el puerto de almacenamiento clave → payload JSON (DIP).
// Es el equivalente del almacenamiento local duradero del navegador.
type SnapshotRepository interface {
	// Get devuelve el payload guardado bajo key. found es false si la clave no existe.
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}
