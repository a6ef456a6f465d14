package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

// TxRunner ejecuta fn con un EventStore, en serie con otras llamadas de la misma clave.
// Lectura fresca, validación y alta del movimiento ocurren dentro de fn.
type TxRunner interface {
	RunForKey(ctx context.Context, key string, fn func(store repository.EventStore) error) error
}

// Metrics contadores de negocio del motor de stock.
type Metrics interface {
	AdjustmentRecorded(kind string)
	AdjustmentRejected(reason string)
	SnapshotComputed(elapsed time.Duration, lines int)
}

// DirectRunner no serializa: reproduce el comportamiento sin guarda en el que dos
// salidas concurrentes sobre la misma clave pueden validar contra el mismo snapshot.
type DirectRunner struct {
	store repository.EventStore
}

// NewDirectRunner construye el runner sin serialización.
func NewDirectRunner(store repository.EventStore) *DirectRunner {
	return &DirectRunner{store: store}
}

// RunForKey ejecuta fn directamente sobre el store.
func (r *DirectRunner) RunForKey(_ context.Context, _ string, fn func(store repository.EventStore) error) error {
	return fn(r.store)
}

type noopMetrics struct{}

func (noopMetrics) AdjustmentRecorded(string)           {}
func (noopMetrics) AdjustmentRejected(string)           {}
func (noopMetrics) SnapshotComputed(time.Duration, int) {}
