package repository

import (
	"context"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// EventStore puerto hacia las dos colecciones de eventos de stock.
// Las lecturas devuelven la colección completa o fallan; nunca un resultado parcial.
// Los errores envuelven domain.ErrStoreUnavailable o domain.ErrConflict.
type EventStore interface {
	ListReceivedIntake(ctx context.Context) ([]entity.ReceivedIntakeEvent, error)
	ListStockMovements(ctx context.Context) ([]entity.StockMovementEvent, error)
	AppendStockMovement(ctx context.Context, movement *entity.StockMovementEvent) error
}
