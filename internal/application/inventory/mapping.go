package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/inventory"
)

// RecordAdjustmentFromRequest adapta el request HTTP al caso de uso RecordAdjustment.
func (uc *StockUseCase) RecordAdjustmentFromRequest(ctx context.Context, in dto.RecordAdjustmentRequest) (*dto.StockMovementResponse, error) {
	m, err := uc.RecordAdjustment(ctx, AdjustmentInput{
		ProductName: in.ProductName,
		Unit:        in.Unit,
		Quantity:    in.Quantity,
		Type:        in.Type,
	})
	if err != nil {
		return nil, err
	}
	return ToStockMovementResponse(m), nil
}

// ToStockMovementResponse convierte un movimiento registrado.
func ToStockMovementResponse(m *entity.StockMovementEvent) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:          m.ID,
		ProductName: m.ProductName,
		Unit:        string(m.Unit),
		Quantity:    m.Quantity,
		Type:        string(m.Kind),
		Date:        m.Date.Format(time.DateOnly),
		CreatedAt:   m.CreatedAt,
	}
}

// ToStockListResponse convierte líneas del snapshot marcando las que están bajo el umbral.
func ToStockListResponse(entries []inventory.SnapshotEntry, lowThreshold decimal.Decimal) dto.StockListResponse {
	items := make([]dto.StockEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.StockEntryResponse{
			ProductName: e.DisplayName,
			Unit:        string(e.Unit),
			Quantity:    e.Quantity,
			Low:         e.Quantity.LessThanOrEqual(lowThreshold),
		})
	}
	return dto.StockListResponse{Total: len(items), Items: items}
}

// ToOutboundLogResponse convierte el registro diario de salidas.
func ToOutboundLogResponse(log []inventory.OutboundLogEntry) []dto.OutboundLogEntryResponse {
	out := make([]dto.OutboundLogEntryResponse, 0, len(log))
	for _, e := range log {
		out = append(out, dto.OutboundLogEntryResponse{
			ProductName: e.ProductName,
			Unit:        string(e.Unit),
			Date:        e.Date.Format(time.DateOnly),
			Quantity:    e.Quantity,
		})
	}
	return out
}
