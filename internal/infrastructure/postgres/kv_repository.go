package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Directorio-api/internal/application/ports"
)

var _ ports.Cache = (*KVRepo)(nil)

// KVRepo implementación del puerto Cache sobre PostgreSQL: una tabla
// clave/valor con el valor en jsonb. El actor de la caché local serializa
// los accesos; este adaptador solo persiste.
type KVRepo struct {
	pool *pgxpool.Pool
}

// NewKVRepository construye el adaptador de persistencia de la caché local.
func NewKVRepository(pool *pgxpool.Pool) *KVRepo {
	return &KVRepo{pool: pool}
}

// EnsureSchema crea la tabla de la caché si no existe.
func (r *KVRepo) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS local_cache (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("crear tabla local_cache: %w", err)
	}
	return nil
}

// Get devuelve el valor de la clave, o (nil, nil) si no existe.
func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM local_cache WHERE key = $1`
	err := r.pool.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer clave %s: %w", key, err)
	}
	return value, nil
}

// Set guarda el valor de la clave, reemplazando el anterior si existía.
func (r *KVRepo) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO local_cache (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("guardar clave %s: %w", key, err)
	}
	return nil
}
