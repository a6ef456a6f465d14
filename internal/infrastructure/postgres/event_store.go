package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ repository.EventStore = (*EventStoreRepo)(nil)

// EventStoreRepo lee entradas recibidas (tabla requests) y movimientos (tabla stock_movements).
type EventStoreRepo struct {
	q Querier
}

// NewEventStore construye el adaptador. Pasar pool o tx (Querier).
func NewEventStore(q Querier) *EventStoreRepo {
	return &EventStoreRepo{q: q}
}

// ListReceivedIntake devuelve las solicitudes en estado TESLİM ALINDI en orden cronológico.
func (r *EventStoreRepo) ListReceivedIntake(ctx context.Context) ([]entity.ReceivedIntakeEvent, error) {
	query := `
		SELECT id, product_name, quantity, unit, request_date
		FROM requests WHERE status = $1
		ORDER BY request_date, id`
	rows, err := r.q.Query(ctx, query, string(entity.RequestReceived))
	if err != nil {
		return nil, storeError("list received intake", err)
	}
	defer rows.Close()

	list := make([]entity.ReceivedIntakeEvent, 0)
	for rows.Next() {
		var (
			ev   entity.ReceivedIntakeEvent
			unit string
		)
		if err := rows.Scan(&ev.ID, &ev.ProductName, &ev.Quantity, &unit, &ev.ReceivedAt); err != nil {
			return nil, storeError("scan received intake", err)
		}
		if ev.Unit, err = entity.ParseUnit(unit); err != nil {
			return nil, fmt.Errorf("request %s: unit %q: %w", ev.ID, unit, err)
		}
		list = append(list, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list received intake", err)
	}
	return list, nil
}

// ListStockMovements devuelve todos los movimientos en orden de alta.
func (r *EventStoreRepo) ListStockMovements(ctx context.Context) ([]entity.StockMovementEvent, error) {
	query := `
		SELECT id, product_name, unit, quantity, type, date, created_at
		FROM stock_movements
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeError("list stock movements", err)
	}
	defer rows.Close()

	list := make([]entity.StockMovementEvent, 0)
	for rows.Next() {
		var (
			m          entity.StockMovementEvent
			unit, kind string
		)
		if err := rows.Scan(&m.ID, &m.ProductName, &unit, &m.Quantity, &kind, &m.Date, &m.CreatedAt); err != nil {
			return nil, storeError("scan stock movement", err)
		}
		if m.Unit, err = entity.ParseUnit(unit); err != nil {
			return nil, fmt.Errorf("movement %s: unit %q: %w", m.ID, unit, err)
		}
		if m.Kind, err = entity.ParseMovementKind(kind); err != nil {
			return nil, fmt.Errorf("movement %s: type %q: %w", m.ID, kind, err)
		}
		m.Date = entity.Day(m.Date)
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list stock movements", err)
	}
	return list, nil
}

// AppendStockMovement inserta un movimiento. Un ID repetido devuelve domain.ErrConflict.
func (r *EventStoreRepo) AppendStockMovement(ctx context.Context, m *entity.StockMovementEvent) error {
	query := `
		INSERT INTO stock_movements (id, product_name, unit, quantity, type, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductName, string(m.Unit), m.Quantity, string(m.Kind), entity.Day(m.Date), createdAt,
	)
	if err != nil {
		return storeError("append stock movement", err)
	}
	return nil
}
