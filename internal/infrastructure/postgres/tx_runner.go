package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-cocina/internal/application/inventory"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunForKey inicia una transacción, toma un advisory lock transaccional sobre la clave
// y ejecuta fn con un EventStore atado a la tx. Commit si fn no falla, Rollback si no.
// Dos ajustes de la misma clave (aunque vengan de procesos distintos) quedan en serie.
func (r *TxRunner) RunForKey(ctx context.Context, key string, fn func(store repository.EventStore) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return storeError("advisory lock", err)
	}

	if err := fn(NewEventStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeError("commit transaction", fmt.Errorf("key %q: %w", key, err))
	}
	return nil
}
