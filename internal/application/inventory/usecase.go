package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/inventory"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

// StockUseCase motor de conciliación: snapshot, registro diario de salidas y ajustes.
// No guarda estado derivado; cada llamada relee ambas colecciones de eventos.
type StockUseCase struct {
	store   repository.EventStore
	runner  TxRunner
	metrics Metrics
	log     zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewStockUseCase construye el caso de uso. metrics puede ser nil.
func NewStockUseCase(store repository.EventStore, runner TxRunner, metrics Metrics, log zerolog.Logger) *StockUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &StockUseCase{
		store:   store,
		runner:  runner,
		metrics: metrics,
		log:     log,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// AdjustmentInput ajuste manual solicitado por la cocina.
type AdjustmentInput struct {
	ProductName string
	Unit        string
	Quantity    decimal.Decimal
	Type        string // OUT | RETURN
}

// GetSnapshot lee ambas colecciones y calcula el stock actual.
// Un error de lectura se propaga; nunca se devuelve un snapshot vacío en su lugar.
func (uc *StockUseCase) GetSnapshot(ctx context.Context) (inventory.Snapshot, error) {
	return uc.snapshot(ctx, uc.store)
}

// GetDailyOutboundLog agrupa las salidas por producto, unidad y día (más reciente primero).
func (uc *StockUseCase) GetDailyOutboundLog(ctx context.Context) ([]inventory.OutboundLogEntry, error) {
	movements, err := uc.store.ListStockMovements(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer movimientos: %w", err)
	}
	return inventory.ComputeDailyOutbound(movements), nil
}

// Search devuelve las líneas cuyo nombre contiene el término (comparación normalizada).
// Término vacío = todas las líneas.
func (uc *StockUseCase) Search(ctx context.Context, term string) ([]inventory.SnapshotEntry, error) {
	snap, err := uc.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	entries := snap.Entries()
	needle := inventory.Normalize(term)
	if needle == "" {
		return entries, nil
	}
	out := make([]inventory.SnapshotEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(e.DisplayName, needle) {
			out = append(out, e)
		}
	}
	return out, nil
}

// LowStock devuelve las líneas con stock <= threshold, de menor a mayor cantidad.
func (uc *StockUseCase) LowStock(ctx context.Context, threshold decimal.Decimal) ([]inventory.SnapshotEntry, error) {
	snap, err := uc.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]inventory.SnapshotEntry, 0)
	for _, e := range snap.Entries() {
		if e.Quantity.LessThanOrEqual(threshold) {
			low = append(low, e)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity.LessThan(low[j].Quantity)
	})
	return low, nil
}

// RecordAdjustment valida y registra una salida o devolución.
//
// Los datos se validan antes de tocar el almacén. Luego, dentro del runner de la clave,
// se relee todo, se recalcula el snapshot, se valida contra él y se agrega el movimiento.
// Errores: domain.ErrInvalidProductName, ErrInvalidUnit, ErrInvalidKind, ErrInvalidQuantity,
// *domain.InsufficientStockError, y los del almacén (ErrStoreUnavailable, ErrConflict).
func (uc *StockUseCase) RecordAdjustment(ctx context.Context, in AdjustmentInput) (*entity.StockMovementEvent, error) {
	adj, err := parseAdjustment(in)
	if err != nil {
		uc.reject(err, in)
		return nil, err
	}
	key := adj.Key()

	var recorded *entity.StockMovementEvent
	err = uc.runner.RunForKey(ctx, string(key), func(store repository.EventStore) error {
		snap, err := uc.snapshot(ctx, store)
		if err != nil {
			return err
		}
		if err := inventory.ValidateAdjustment(adj, snap); err != nil {
			return err
		}
		now := uc.now()
		m := &entity.StockMovementEvent{
			ID:          uc.newID(),
			ProductName: inventory.Normalize(adj.ProductName),
			Unit:        adj.Unit,
			Quantity:    adj.Quantity,
			Kind:        adj.Kind,
			Date:        entity.Day(now),
			CreatedAt:   now,
		}
		if err := store.AppendStockMovement(ctx, m); err != nil {
			return err
		}
		recorded = m
		return nil
	})
	if err != nil {
		uc.reject(err, in)
		return nil, err
	}

	uc.metrics.AdjustmentRecorded(string(recorded.Kind))
	uc.log.Info().
		Str("id", recorded.ID).
		Str("product", recorded.ProductName).
		Str("unit", string(recorded.Unit)).
		Str("kind", string(recorded.Kind)).
		Str("quantity", recorded.Quantity.String()).
		Msg("ajuste de stock registrado")
	return recorded, nil
}

func (uc *StockUseCase) snapshot(ctx context.Context, store repository.EventStore) (inventory.Snapshot, error) {
	start := time.Now()
	intakes, err := store.ListReceivedIntake(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer entradas recibidas: %w", err)
	}
	movements, err := store.ListStockMovements(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer movimientos: %w", err)
	}
	snap := inventory.ComputeSnapshot(intakes, movements)
	uc.metrics.SnapshotComputed(time.Since(start), len(snap))
	return snap, nil
}

func (uc *StockUseCase) reject(err error, in AdjustmentInput) {
	reason := RejectReason(err)
	uc.metrics.AdjustmentRejected(reason)

	ev := uc.log.Warn()
	if reason == "store_unavailable" || reason == "internal" {
		ev = uc.log.Error()
	}
	ev.Err(err).
		Str("reason", reason).
		Str("product", in.ProductName).
		Str("unit", in.Unit).
		Str("kind", in.Type).
		Str("quantity", in.Quantity.String()).
		Msg("ajuste de stock rechazado")
}

// RejectReason etiqueta corta del motivo de rechazo (métricas y logs).
func RejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidProductName),
		errors.Is(err, domain.ErrInvalidUnit),
		errors.Is(err, domain.ErrInvalidKind):
		return "invalid_input"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	}
	return "internal"
}

func parseAdjustment(in AdjustmentInput) (inventory.Adjustment, error) {
	if err := inventory.ValidateProductName(in.ProductName); err != nil {
		return inventory.Adjustment{}, err
	}
	unit, err := entity.ParseUnit(in.Unit)
	if err != nil {
		return inventory.Adjustment{}, err
	}
	kind, err := entity.ParseMovementKind(in.Type)
	if err != nil {
		return inventory.Adjustment{}, err
	}
	if err := inventory.ValidateQuantity(in.Quantity); err != nil {
		return inventory.Adjustment{}, err
	}
	return inventory.Adjustment{
		ProductName: in.ProductName,
		Unit:        unit,
		Quantity:    in.Quantity,
		Kind:        kind,
	}, nil
}
