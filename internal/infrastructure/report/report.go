// Package report genera los reportes descargables del stock (XLSX y PDF).
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain/inventory"
)

// StockReport datos de un reporte: snapshot y registro diario de salidas ya calculados.
type StockReport struct {
	Title        string
	GeneratedAt  time.Time
	Stock        []inventory.SnapshotEntry
	Outbound     []inventory.OutboundLogEntry
	LowThreshold decimal.Decimal
}

func (r StockReport) isLow(e inventory.SnapshotEntry) bool {
	return e.Quantity.LessThanOrEqual(r.LowThreshold)
}

func (r StockReport) title() string {
	if r.Title != "" {
		return r.Title
	}
	return "Inventario de cocina"
}
